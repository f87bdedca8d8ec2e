package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string
	LineChannelID    string

	SupabaseURL        string
	SupabaseServiceKey string

	VerificationAPIURL string
	AddressAPIURL      string
	EmailAPIURL        string
	EmailAPIKey        string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	LineChannelID = GetEnv("LINE_CHANNEL_ID")

	SupabaseURL = GetEnv("SUPABASE_URL")
	SupabaseServiceKey = GetEnv("SUPABASE_SERVICE_ROLE_KEY")

	VerificationAPIURL = GetEnv("DOCUMENT_VERIFICATION_API_URL")
	AddressAPIURL = GetEnv("ADDRESS_API_URL", "https://zipcloud.ibsnet.co.jp/api/search")
	EmailAPIURL = GetEnv("EMAIL_API_URL")
	EmailAPIKey = GetEnv("EMAIL_API_KEY")

	for _, kv := range []struct{ key, val string }{
		{"JWT_SECRET", JWTSecret},
		{"JWT_REFRESH_SECRET", JWTRefreshSecret},
		{"GOOGLE_CLIENT_ID", GoogleClientID},
		{"LINE_CHANNEL_ID", LineChannelID},
		{"SUPABASE_URL", SupabaseURL},
	} {
		if kv.val == "" {
			log.Printf("❌ %s is not set!", kv.key)
		} else {
			log.Printf("✅ %s loaded.", kv.key)
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
