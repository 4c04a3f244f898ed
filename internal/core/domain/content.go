package domain

import (
	"slices"
	"time"
)

// Tone is the voice generated copy is written in.
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneFriendly      Tone = "friendly"
	ToneAuthoritative Tone = "authoritative"
)

// AIContent holds generated creative content for a campaign.
type AIContent struct {
	Generated     bool            `json:"generated" bson:"generated"`
	Content       Content         `json:"content" bson:"content"`
	Settings      ContentSettings `json:"settings" bson:"settings"`
	LastGenerated *time.Time      `json:"lastGenerated,omitempty" bson:"lastGenerated,omitempty"`
}

// Content is the creative payload produced by a content generator.
type Content struct {
	Headlines    []string `json:"headlines" bson:"headlines" validate:"dive,required"`
	Descriptions []string `json:"descriptions" bson:"descriptions" validate:"dive,required"`
	Hashtags     []string `json:"hashtags" bson:"hashtags" validate:"dive,required"`
	Copy         string   `json:"copy" bson:"copy"`
	Images       []Image  `json:"images" bson:"images" validate:"dive"`
}

type Image struct {
	URL  string `json:"url" bson:"url" validate:"required,url"`
	Alt  string `json:"alt,omitempty" bson:"alt,omitempty"`
	Type string `json:"type,omitempty" bson:"type,omitempty" validate:"omitempty,oneof=banner social ad"`
}

type ContentSettings struct {
	Tone       Tone   `json:"tone" bson:"tone" validate:"omitempty,oneof=professional casual friendly authoritative"`
	Language   string `json:"language" bson:"language"`
	BrandVoice string `json:"brandVoice,omitempty" bson:"brandVoice,omitempty"`
}

// Empty reports whether the content carries nothing at all.
func (c Content) Empty() bool {
	return len(c.Headlines) == 0 && len(c.Descriptions) == 0 && len(c.Hashtags) == 0 &&
		c.Copy == "" && len(c.Images) == 0
}

func (c Content) clone() Content {
	c.Headlines = slices.Clone(c.Headlines)
	c.Descriptions = slices.Clone(c.Descriptions)
	c.Hashtags = slices.Clone(c.Hashtags)
	c.Images = slices.Clone(c.Images)
	return c
}

// AttachContent replaces the campaign's creative content. Settings are
// merged: empty fields keep their current value. Closed campaigns are
// immutable and reject new content.
func AttachContent(c *Campaign, content Content, settings ContentSettings, now time.Time) error {
	if c.Status.Terminal() {
		return NewError(ErrForbidden, "status", "content cannot be attached to a "+string(c.Status)+" campaign").
			WithDetail("status", string(c.Status))
	}
	if content.Empty() {
		return validationError("content", "content must not be empty")
	}
	if err := Validate(content); err != nil {
		return err
	}
	if err := Validate(settings); err != nil {
		return err
	}
	c.AIContent.Content = content.clone()
	if settings.Tone != "" {
		c.AIContent.Settings.Tone = settings.Tone
	}
	if settings.Language != "" {
		c.AIContent.Settings.Language = settings.Language
	}
	if settings.BrandVoice != "" {
		c.AIContent.Settings.BrandVoice = settings.BrandVoice
	}
	c.AIContent.Generated = true
	at := now.UTC()
	c.AIContent.LastGenerated = &at
	return nil
}
