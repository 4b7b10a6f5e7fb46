// handlers/cloudinary.go - Signed-upload credentials for the media CDN
package handlers

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type SignatureRequest struct {
	Params map[string]string `json:"params"`
}

// SignUpload returns the signature a browser needs for a direct Cloudinary
// upload. The API secret never leaves the server.
// POST /api/cloudinary/signature
func SignUpload(c *fiber.Ctx) error {
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	if apiSecret == "" || apiKey == "" || cloudName == "" {
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Media uploads not configured"})
	}

	var req SignatureRequest
	// Empty body means "sign just the timestamp"
	_ = c.BodyParser(&req)

	params := map[string]string{}
	for k, v := range req.Params {
		// Credentials and the signature itself are never sign inputs.
		switch k {
		case "api_key", "api_secret", "signature", "cloud_name":
			continue
		}
		params[k] = v
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	params["timestamp"] = timestamp

	return c.JSON(fiber.Map{
		"success":    true,
		"signature":  signParams(params, apiSecret),
		"timestamp":  timestamp,
		"api_key":    apiKey,
		"cloud_name": cloudName,
	})
}

// signParams implements Cloudinary's signing scheme: SHA-1 hex over the
// params serialized as k=v pairs, sorted by key, joined with &, with the API
// secret appended.
func signParams(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + apiSecret))
	return hex.EncodeToString(sum[:])
}
