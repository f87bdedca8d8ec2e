package repository

import (
	"time"

	"gorm.io/gorm"

	authModel "ichiba_backend/internals/features/users/auth/model"
	userModel "ichiba_backend/internals/features/users/user/model"
)

func CreateUser(db *gorm.DB, u *userModel.UserModel) error {
	return db.Create(u).Error
}

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.Where("email = ?", email).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func FindUserByID(db *gorm.DB, id any) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.Where("user_id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.Where("google_id = ?", googleID).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateRefreshToken(db *gorm.DB, rt *authModel.RefreshTokenModel) error {
	return db.Create(rt).Error
}

func FindRefreshTokenByHash(db *gorm.DB, hash []byte) (*authModel.RefreshTokenModel, error) {
	var rt authModel.RefreshTokenModel
	if err := db.Where("token_hash = ? AND expires_at > now()", hash).Take(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash []byte) error {
	return db.Where("token_hash = ?", hash).Delete(&authModel.RefreshTokenModel{}).Error
}

func BlacklistToken(db *gorm.DB, token string, ttl time.Duration) error {
	row := authModel.TokenBlacklistModel{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	// idempotent on the unique token column
	return db.Exec(
		`INSERT INTO token_blacklist (token, expires_at) VALUES (?, ?)
		 ON CONFLICT (token) DO NOTHING`,
		row.Token, row.ExpiresAt,
	).Error
}

func IsTokenBlacklisted(db *gorm.DB, token string) (bool, error) {
	var exists bool
	err := db.Raw(
		`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = ? AND expires_at > now())`,
		token,
	).Scan(&exists).Error
	return exists, err
}

func DeleteExpiredBlacklistEntries(db *gorm.DB) (int64, error) {
	res := db.Exec(`DELETE FROM token_blacklist WHERE expires_at <= now()`)
	return res.RowsAffected, res.Error
}
