package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ichiba_backend/internals/features/identity"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
	"ichiba_backend/internals/helpers/storage"
)

// Document slots accepted by the registration forms.
var allowedSlots = map[string]bool{
	"identity_document": true,
	"business_permit":   true,
	"food_permit":       true,
	"event_image":       true,
}

type UploadController struct {
	Session kvstore.Store
}

func NewUploadController(session kvstore.Store) *UploadController {
	return &UploadController{Session: session}
}

// UploadDocuments accepts a multipart form where each file field names its
// document slot, transcodes every image to webp and returns the public URL
// per slot.
func (ctrl *UploadController) UploadDocuments(c *fiber.Ctx) error {
	id, err := identity.Resolve(c.Context(), identity.FromRequestLocals(c, ctrl.Session))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Multipart form required")
	}

	urls := map[string]string{}
	failed := map[string]string{}
	for slot, files := range form.File {
		if !allowedSlots[slot] {
			failed[slot] = "unknown document slot"
			continue
		}
		if len(files) == 0 {
			continue
		}
		// last file wins when the client repeats a slot
		fh := files[len(files)-1]
		folder := "documents/" + sanitizeKey(id.ID) + "/" + slot
		url, uerr := storage.UploadDocumentImage(folder, fh)
		if uerr != nil {
			log.Printf("[WARN] upload failed for slot %s: %v", slot, uerr)
			failed[slot] = uerr.Error()
			continue
		}
		urls[slot] = url
	}

	if len(urls) == 0 && len(failed) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No files in request")
	}
	if len(urls) == 0 {
		return helper.JsonError(c, fiber.StatusBadGateway, "All uploads failed")
	}

	out := fiber.Map{"urls": urls}
	if len(failed) > 0 {
		out["failed"] = failed
	}
	return helper.JsonCreated(c, "Documents uploaded", out)
}

func sanitizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
