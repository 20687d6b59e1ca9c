package models

// ContactInfo is a singleton: one logical record for the whole site, updated
// with merge semantics (unspecified fields keep their current value).
type ContactInfo struct {
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Facebook    string `json:"facebook"`
	Instagram   string `json:"instagram"`
	Twitter     string `json:"twitter"`
	Description string `json:"description"`
}

type ContactInfoPatch struct {
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Facebook    *string `json:"facebook"`
	Instagram   *string `json:"instagram"`
	Twitter     *string `json:"twitter"`
	Description *string `json:"description"`
}

func (p ContactInfoPatch) Apply(c *ContactInfo) {
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Facebook != nil {
		c.Facebook = *p.Facebook
	}
	if p.Instagram != nil {
		c.Instagram = *p.Instagram
	}
	if p.Twitter != nil {
		c.Twitter = *p.Twitter
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}
