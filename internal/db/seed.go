package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// DemoOrganization is the organization demo campaigns are seeded into.
const DemoOrganization = "demo-org"

// DemoAdmin is the principal that owns the seeded campaigns.
var DemoAdmin = domain.Principal{ID: "demo-admin", OrganizationID: DemoOrganization, Role: domain.OrgRoleAdmin}

var demoTypes = []domain.Type{
	domain.TypeSocial, domain.TypeEmail, domain.TypeContent, domain.TypeAdvertising, domain.TypeEvent,
}

// Seed creates a handful of demo campaigns through svc and walks them
// through the lifecycle with some spend and traffic, so every path a real
// caller takes is exercised. It is skipped when the demo organization
// already has campaigns.
func Seed(ctx context.Context, svc port.CampaignUseCase) error {
	existing, err := svc.List(ctx, DemoAdmin, port.ListQuery{Page: port.Page{Limit: 1}})
	if err != nil {
		return err
	}
	if existing.Total > 0 {
		return nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	for i, typ := range demoTypes {
		c, err := svc.Create(ctx, DemoAdmin, domain.CreateCampaignInput{
			Title:       fmt.Sprintf("Demo campaign %d", i+1),
			Description: fmt.Sprintf("Seeded %s campaign", typ),
			Type:        typ,
			Tags:        []string{"demo", string(typ)},
			TargetAudience: domain.TargetAudience{
				Demographics: domain.Demographics{Location: []string{"US", "KR"}},
				Size:         int64(10000 * (i + 1)),
			},
			Budget:   domain.BudgetInput{Total: 500000, Currency: "USD"},
			Schedule: domain.Schedule{StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 1, 0)},
			Goals:    domain.Goals{Target: 100, Unit: "conversions"},
			Tracking: domain.TrackingInput{ConversionEvents: []string{"signup"}},
		})
		if err != nil {
			return fmt.Errorf("seed campaign %d: %w", i+1, err)
		}

		// Leave the first campaign in draft; move the rest to active.
		if i == 0 {
			continue
		}
		for _, to := range []domain.Status{domain.StatusReview, domain.StatusApproved, domain.StatusActive} {
			if _, err = svc.Transition(ctx, DemoAdmin, c.ID, to, 0); err != nil {
				return fmt.Errorf("seed transition %s: %w", to, err)
			}
		}

		impressions := int64(1000 + r.Intn(9000))
		events := []domain.Event{
			{Type: domain.EventImpression, Count: impressions},
			{Type: domain.EventClick, Count: impressions / int64(20+r.Intn(30))},
			{Type: domain.EventConversion, Count: int64(1 + r.Intn(20))},
			{Type: domain.EventCustom, Name: domain.RevenueEvent, Value: float64(50000 + r.Intn(200000))},
		}
		for _, e := range events {
			if _, err = svc.RecordEvent(ctx, DemoAdmin, c.ID, e, 0); err != nil {
				return fmt.Errorf("seed event %s: %w", e.Type, err)
			}
		}
		if _, err = svc.ApplySpend(ctx, DemoAdmin, c.ID, int64(10000+r.Intn(200000)), 0); err != nil {
			return fmt.Errorf("seed spend: %w", err)
		}
	}
	return nil
}
