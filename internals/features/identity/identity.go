// Package identity decides which durable key a profile row is written
// against. A visitor may hold a platform session (email/password or Google)
// or a LINE session whose profile lives in the injected session store; the
// two must never be conflated into one column.
package identity

import (
	"context"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ichiba_backend/internals/helpers/kvstore"
)

type Kind string

const (
	KindPlatform Kind = "platform"
	KindExternal Kind = "external"
)

const (
	AuthTypeLine  = "line"
	AuthTypeEmail = "email"
)

// ErrAuthNotCompleted is blocking: submission must not proceed with a null
// identity.
var ErrAuthNotCompleted = fiber.NewError(fiber.StatusUnauthorized, "Authentication not completed")

// Identity is the resolved durable write key.
//   - KindPlatform: ID is the platform user uuid.
//   - KindExternal: ID is the LINE user id; LinkedPlatformID carries the
//     platform uuid (if any) for the separate link column.
type Identity struct {
	Kind             Kind
	ID               string
	LinkedPlatformID *uuid.UUID
}

// LineProfile is the session-cached external login profile.
type LineProfile struct {
	LineUserID  string `json:"line_user_id"`
	DisplayName string `json:"display_name"`
	PictureURL  string `json:"picture_url,omitempty"`
}

func LineProfileKey(lineUserID string) string {
	return "line_profile:" + lineUserID
}

// Input gathers every identity source a request can carry.
type Input struct {
	SessionUserID *uuid.UUID // platform JWT session, if any
	AuthType      string     // "line" | "email" | ""
	LineUserID    string     // token- or profile-carried LINE id
	Session       kvstore.Store
	SessionKey    string // kv key of the cached LINE profile, if known
}

// Resolve picks the durable identity deterministically:
//  1. LINE-authenticated requests are keyed by the LINE user id; a platform
//     session only becomes the link, never the key.
//  2. Otherwise the platform session user id wins.
//  3. Otherwise fall back to the session-cached LINE profile.
//
// Nothing resolvable ⇒ ErrAuthNotCompleted.
func Resolve(ctx context.Context, in Input) (Identity, error) {
	lineID := strings.TrimSpace(in.LineUserID)
	if lineID == "" && in.Session != nil && in.SessionKey != "" {
		if raw, ok, err := in.Session.Get(ctx, in.SessionKey); err == nil && ok {
			var p LineProfile
			if err := sonic.UnmarshalString(raw, &p); err == nil {
				lineID = strings.TrimSpace(p.LineUserID)
			}
		}
	}

	if in.AuthType == AuthTypeLine {
		if lineID == "" {
			return Identity{}, ErrAuthNotCompleted
		}
		return Identity{
			Kind:             KindExternal,
			ID:               lineID,
			LinkedPlatformID: in.SessionUserID,
		}, nil
	}

	if in.SessionUserID != nil && *in.SessionUserID != uuid.Nil {
		return Identity{Kind: KindPlatform, ID: in.SessionUserID.String()}, nil
	}

	if lineID != "" {
		return Identity{Kind: KindExternal, ID: lineID}, nil
	}

	return Identity{}, ErrAuthNotCompleted
}

// FromRequestLocals builds a resolver Input from the JWT middleware locals.
func FromRequestLocals(c *fiber.Ctx, session kvstore.Store) Input {
	in := Input{Session: session}

	if s, _ := c.Locals("user_id").(string); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			in.SessionUserID = &id
		}
	}
	in.AuthType, _ = c.Locals("auth_type").(string)
	if s, _ := c.Locals("line_user_id").(string); s != "" {
		in.LineUserID = s
		in.SessionKey = LineProfileKey(s)
	}
	return in
}
