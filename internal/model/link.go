package model

import "time"

// DocumentLink is a capability record granting gated access to one document's bytes.
// LinkID is the unguessable slug used in externally visible URLs; LinkURL is derived
// from configuration at read time and never persisted, so the base host can change
// across environments.
type DocumentLink struct {
	ID              int64      `json:"-"`
	LinkID          string     `json:"linkId"`
	DocumentID      string     `json:"documentId"`
	CreatedByUserID string     `json:"createdByUserId"`
	Alias           *string    `json:"alias"`
	IsPublic        bool       `json:"isPublic"`
	PasswordHash    *string    `json:"-"`
	ExpirationTime  *time.Time `json:"expirationTime"`
	VisitorFields   []string   `json:"visitorFields"`
	LinkURL         string     `json:"linkUrl"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// IsPasswordProtected reports whether the password gate applies to this link.
func (l *DocumentLink) IsPasswordProtected() bool {
	return l.PasswordHash != nil && *l.PasswordHash != ""
}

// IsTrulyPublic reports whether the link carries no password gate and no
// visitor-detail gate. Such links are auto-resolved by clients, but the server-side
// gate pipeline still runs on every access.
func (l *DocumentLink) IsTrulyPublic() bool {
	return !l.IsPasswordProtected() && len(l.VisitorFields) == 0
}

// PublicLinkMeta is the pre-access gating information exposed to visitors.
type PublicLinkMeta struct {
	IsPasswordProtected bool     `json:"isPasswordProtected"`
	VisitorFields       []string `json:"visitorFields"`
}

// FileAccess is the grant returned once every gate has passed: a time-limited
// signed URL for the document's bytes plus display metadata.
type FileAccess struct {
	SignedURL  string `json:"signedUrl"`
	FileName   string `json:"fileName"`
	Size       int64  `json:"size"`
	FileType   string `json:"fileType"`
	DocumentID string `json:"documentId"`
}
