// Package generator contains content generators for the AI content slot.
package generator

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// phrasing is the wording used for one tone.
type phrasing struct {
	headline    string
	description string
	copy        string
	cta         string
}

var phrasings = map[domain.Tone]phrasing{
	domain.ToneProfessional: {
		headline:    "Introducing %s",
		description: "%s, built for teams that expect results.",
		copy:        "Discover how %s helps you reach your goals faster.",
		cta:         "Learn more",
	},
	domain.ToneCasual: {
		headline:    "Say hi to %s",
		description: "%s just dropped and it's pretty great.",
		copy:        "Check out %s and see what the buzz is about.",
		cta:         "Take a look",
	},
	domain.ToneFriendly: {
		headline:    "Something special for you: %s",
		description: "We made %s with you in mind.",
		copy:        "We think you'll love %s. Come see for yourself!",
		cta:         "Check it out",
	},
	domain.ToneAuthoritative: {
		headline:    "%s sets the standard",
		description: "%s is the proven choice of industry leaders.",
		copy:        "Join the leaders who rely on %s every day.",
		cta:         "Get started now",
	},
}

// Template builds content from fixed phrasings per tone. It stands in for a
// model-backed generator and never fails for a non-empty prompt.
type Template struct {
	maxHashtags int
}

// NewTemplate returns a template generator.
func NewTemplate() *Template {
	return &Template{maxHashtags: 5}
}

var _ port.ContentGenerator = (*Template)(nil)

func (t *Template) Generate(ctx context.Context, prompt string, settings domain.ContentSettings) (domain.Content, error) {
	if err := ctx.Err(); err != nil {
		return domain.Content{}, err
	}
	subject := strings.TrimSpace(prompt)
	if subject == "" {
		return domain.Content{}, fmt.Errorf("prompt is empty")
	}
	ph, ok := phrasings[settings.Tone]
	if !ok {
		ph = phrasings[domain.ToneProfessional]
	}
	copyText := fmt.Sprintf(ph.copy, subject) + " " + ph.cta + "."
	if settings.BrandVoice != "" {
		copyText += " " + settings.BrandVoice
	}
	return domain.Content{
		Headlines: []string{
			fmt.Sprintf(ph.headline, subject),
			fmt.Sprintf("%s: %s", ph.cta, subject),
		},
		Descriptions: []string{fmt.Sprintf(ph.description, subject)},
		Hashtags:     t.hashtags(subject),
		Copy:         copyText,
	}, nil
}

// hashtags turns the significant words of the prompt into tags.
func (t *Template) hashtags(prompt string) []string {
	words := strings.FieldsFunc(prompt, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool)
	tags := make([]string, 0, t.maxHashtags)
	for _, w := range words {
		if len([]rune(w)) < 4 {
			continue
		}
		w = strings.ToLower(w)
		if seen[w] {
			continue
		}
		seen[w] = true
		tags = append(tags, "#"+w)
		if len(tags) == t.maxHashtags {
			break
		}
	}
	if len(tags) == 0 {
		tags = append(tags, "#campaign")
	}
	return tags
}
