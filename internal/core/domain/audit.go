package domain

import "time"

// Audit holds the creator/modifier stamps shared by every stored record.
type Audit struct {
	CreatedBy  string     `json:"createdBy" bson:"created_by"`
	CreatedAt  time.Time  `json:"createdAt" bson:"created_at"`
	ModifiedBy string     `json:"modifiedBy,omitempty" bson:"modified_by,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty" bson:"modified_at,omitempty"`
}

// NewAudit stamps the creation fields.
func NewAudit(by string, at time.Time) Audit {
	return Audit{CreatedBy: by, CreatedAt: at.UTC()}
}

// Touch stamps the modification fields. Every mutation must call it.
func (a *Audit) Touch(by string, at time.Time) {
	t := at.UTC()
	a.ModifiedBy = by
	a.ModifiedAt = &t
}
