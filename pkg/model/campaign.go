package model

import "time"

// CampaignRecord is the structured representation of a marketing campaign.
// Field names map to the standard UTM query keys: source -> utm_source,
// medium -> utm_medium, name -> utm_campaign, id -> utm_id, term -> utm_term,
// content -> utm_content.
type CampaignRecord struct {
	WebsiteURL string `bson:"website_url" json:"website_url" validate:"required"`
	Source     string `bson:"source" json:"source" validate:"required"`
	Medium     string `bson:"medium" json:"medium" validate:"required"`
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	ID         string `bson:"id,omitempty" json:"id,omitempty"`
	Term       string `bson:"term,omitempty" json:"term,omitempty"`
	Content    string `bson:"content,omitempty" json:"content,omitempty"`
}

// FieldWarnings maps a record field name to the lint warnings raised for its
// value, in check order.
type FieldWarnings map[string][]string

// CampaignLink is a persisted entry of the link history: the record a URL was
// built from, the final URL, and the advisory findings observed at build time.
type CampaignLink struct {
	ID        string         `bson:"-" json:"id"`
	Label     string         `bson:"label,omitempty" json:"label,omitempty"`
	Record    CampaignRecord `bson:"record" json:"record"`
	FinalURL  string         `bson:"final_url" json:"final_url"`
	Warnings  FieldWarnings  `bson:"warnings,omitempty" json:"warnings,omitempty"`
	Notices   []string       `bson:"notices,omitempty" json:"notices,omitempty"`
	Reachable *bool          `bson:"reachable,omitempty" json:"reachable,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}
