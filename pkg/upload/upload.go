// Package upload issues time limited upload targets for audio blobs.
// The rest of the system treats this as an opaque capability: given a
// blob id and a success redirect it hands back a POST URL plus signed
// form fields, and the blob's public URL once the upload completes.
package upload

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ventu-io/go-shortid"
)

const defaultExpiryMin = 10

// Config is the storage section of the configuration file.
type Config struct {
	// BucketURL is the public base URL of the blob bucket. Uploads are
	// POSTed here and blobs are served from <bucket_url>/<blob_id>.
	BucketURL string `toml:"bucket_url"`
	// Secret signs upload policies.
	Secret string `toml:"secret"`
	// ExpiryMin is how long an issued target stays valid, in minutes.
	ExpiryMin int `toml:"expiry_min"`
}

// Target is a signed, time limited permission to upload one blob.
type Target struct {
	URL       string            `json:"url"`
	Fields    map[string]string `json:"fields"`
	ExpiresAt time.Time         `json:"expires_at"`
}

type Issuer struct {
	cfg Config
	sid *shortid.Shortid
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.ExpiryMin <= 0 {
		cfg.ExpiryMin = defaultExpiryMin
	}

	sid, err := shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create blob id generator")
	}

	return &Issuer{cfg: cfg, sid: sid}, nil
}

// NewBlobID allocates a fresh blob name.
func (i *Issuer) NewBlobID() (string, error) {
	id, err := i.sid.Generate()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate blob id")
	}

	return id, nil
}

// BlobURL is where the blob will be served from after upload.
func (i *Issuer) BlobURL(blobID string) string {
	return strings.TrimSuffix(i.cfg.BucketURL, "/") + "/" + blobID
}

type policy struct {
	Key       string    `json:"key"`
	Redirect  string    `json:"success_action_redirect"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueTarget signs an upload policy for the blob. The storage frontend
// verifies the signature and expiry before accepting the POST, then
// redirects the browser to redirectURL.
func (i *Issuer) IssueTarget(blobID, redirectURL string) (*Target, error) {
	expiresAt := time.Now().Add(time.Duration(i.cfg.ExpiryMin) * time.Minute).UTC()

	raw, err := json.Marshal(policy{
		Key:       blobID,
		Redirect:  redirectURL,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize upload policy")
	}

	encoded := base64.StdEncoding.EncodeToString(raw)

	mac := hmac.New(sha256.New, []byte(i.cfg.Secret))
	mac.Write([]byte(encoded))
	signature := hex.EncodeToString(mac.Sum(nil))

	return &Target{
		URL: i.cfg.BucketURL,
		Fields: map[string]string{
			"key":                     blobID,
			"policy":                  encoded,
			"x-signature":             signature,
			"success_action_redirect": redirectURL,
		},
		ExpiresAt: expiresAt,
	}, nil
}
