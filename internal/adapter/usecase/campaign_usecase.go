package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

const tracerName = "campaign-manager/usecase"

// CampaignUseCase implements port.CampaignUseCase. Each business operation
// loads the campaign, applies the domain rules to a copy and persists it
// with a single version-checked write.
type CampaignUseCase struct {
	repo      port.CampaignRepository
	perms     port.PermissionResolver
	ledger    domain.Ledger
	generator port.ContentGenerator
	publisher port.EventPublisher
	logger    *slog.Logger
	tracer    trace.Tracer

	now        func() time.Time
	newID      func() string
	retryDelay time.Duration
}

// Option configures a CampaignUseCase.
type Option func(*CampaignUseCase)

// WithLedger sets the budget ledger, e.g. to allow a spend overrun.
func WithLedger(l domain.Ledger) Option {
	return func(u *CampaignUseCase) { u.ledger = l }
}

// WithGenerator sets the AI content generator used by GenerateContent.
func WithGenerator(g port.ContentGenerator) Option {
	return func(u *CampaignUseCase) { u.generator = g }
}

// WithPublisher sets the change-event publisher.
func WithPublisher(p port.EventPublisher) Option {
	return func(u *CampaignUseCase) { u.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(u *CampaignUseCase) { u.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(u *CampaignUseCase) { u.now = now }
}

// WithIDGenerator overrides campaign, comment and event id generation.
func WithIDGenerator(f func() string) Option {
	return func(u *CampaignUseCase) { u.newID = f }
}

// WithRetryDelay sets the pause before retrying a conflicted write.
func WithRetryDelay(d time.Duration) Option {
	return func(u *CampaignUseCase) { u.retryDelay = d }
}

// NewCampaignUseCase creates a new usecase over the given store and
// permission policy.
func NewCampaignUseCase(repo port.CampaignRepository, perms port.PermissionResolver, opts ...Option) *CampaignUseCase {
	u := &CampaignUseCase{
		repo:       repo,
		perms:      perms,
		logger:     slog.New(slog.DiscardHandler),
		tracer:     otel.Tracer(tracerName),
		now:        time.Now,
		newID:      uuid.NewString,
		retryDelay: 20 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// Create validates the input and stores a new draft campaign with the
// principal as owner.
func (u *CampaignUseCase) Create(ctx context.Context, p domain.Principal, in domain.CreateCampaignInput) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.create", p, "")
	defer func() { finish(span, err) }()

	if err = u.checkPrincipal(p); err != nil {
		return nil, err
	}
	if !u.perms.CanAuthor(p.Role) {
		return nil, orgForbidden(p.Role, "create campaigns")
	}
	created, err := domain.NewCampaign(in, p, u.newID(), u.now())
	if err != nil {
		return nil, err
	}
	if err = u.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeCreated, p, &created, "", "")
	return &created, nil
}

// Get returns a campaign if the principal may see it. Campaigns the
// principal may not see are reported as not found.
func (u *CampaignUseCase) Get(ctx context.Context, p domain.Principal, id string) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.get", p, id)
	defer func() { finish(span, err) }()

	if err = u.checkPrincipal(p); err != nil {
		return nil, err
	}
	return u.load(ctx, p, id)
}

// Update applies a descriptive patch to the campaign.
func (u *CampaignUseCase) Update(ctx context.Context, p domain.Principal, id string, patch domain.CampaignPatch, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.update", p, id)
	defer func() { finish(span, err) }()

	if patch.Empty() {
		return nil, domain.NewError(domain.ErrValidation, "patch", "no fields to update")
	}
	if !u.perms.CanAuthor(p.Role) {
		return nil, orgForbidden(p.Role, "update campaigns")
	}
	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanEdit(role) {
			return domain.ForbiddenError(role, "edit the campaign")
		}
		return patch.Apply(c)
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeUpdated, p, c, "", "")
	return c, nil
}

// Delete removes the campaign.
func (u *CampaignUseCase) Delete(ctx context.Context, p domain.Principal, id string) (err error) {
	ctx, span := u.start(ctx, "campaign.delete", p, id)
	defer func() { finish(span, err) }()

	if err = u.checkPrincipal(p); err != nil {
		return err
	}
	if !u.perms.CanAuthor(p.Role) {
		return orgForbidden(p.Role, "delete campaigns")
	}
	c, err := u.load(ctx, p, id)
	if err != nil {
		return err
	}
	if role := p.RoleOn(c); !u.perms.CanDelete(role) {
		return domain.ForbiddenError(role, "delete the campaign")
	}
	if err = u.repo.Delete(ctx, p.OrganizationID, id); err != nil {
		return err
	}
	u.publish(ctx, domain.ChangeDeleted, p, c, "", "")
	return nil
}

// List returns the page of campaigns visible to the principal.
func (u *CampaignUseCase) List(ctx context.Context, p domain.Principal, q port.ListQuery) (res *port.ListResult, err error) {
	ctx, span := u.start(ctx, "campaign.list", p, "")
	defer func() { finish(span, err) }()

	if err = u.checkPrincipal(p); err != nil {
		return nil, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, domain.NewError(domain.ErrValidation, "status", "unknown status "+string(q.Status))
	}
	page := q.Page.Normalize()
	campaigns, total, err := u.repo.List(ctx, u.filter(p, q), page)
	if err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	pages := total / int64(page.Limit)
	if total%int64(page.Limit) != 0 {
		pages++
	}
	return &port.ListResult{
		Campaigns: campaigns,
		Page:      page.Number,
		Limit:     page.Limit,
		Total:     total,
		Pages:     pages,
	}, nil
}

// Summary aggregates the campaigns visible to the principal.
func (u *CampaignUseCase) Summary(ctx context.Context, p domain.Principal) (s *port.Summary, err error) {
	ctx, span := u.start(ctx, "campaign.summary", p, "")
	defer func() { finish(span, err) }()

	if err = u.checkPrincipal(p); err != nil {
		return nil, err
	}
	s, err = u.repo.Summary(ctx, u.filter(p, port.ListQuery{}))
	if err != nil {
		return nil, err
	}
	s.Finish()
	return s, nil
}

func (u *CampaignUseCase) filter(p domain.Principal, q port.ListQuery) port.ListFilter {
	f := port.ListFilter{
		OrganizationID: p.OrganizationID,
		Status:         q.Status,
		Type:           q.Type,
		Priority:       q.Priority,
		Tag:            q.Tag,
		Search:         q.Search,
	}
	if !u.perms.CanViewAll(p.Role) {
		f.VisibleTo = p.ID
	}
	return f
}

// load fetches a campaign and hides it from principals who may not see it.
func (u *CampaignUseCase) load(ctx context.Context, p domain.Principal, id string) (*domain.Campaign, error) {
	c, err := u.repo.Get(ctx, p.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if !u.visible(p, c) {
		return nil, domain.NotFoundError(p.OrganizationID, id)
	}
	return c, nil
}

func (u *CampaignUseCase) visible(p domain.Principal, c *domain.Campaign) bool {
	if c.OrganizationID != p.OrganizationID {
		return false
	}
	return u.perms.CanViewAll(p.Role) || c.CreatedBy == p.ID || p.RoleOn(c) != domain.RoleNone
}

// mutation applies domain rules to a private copy of the campaign. A
// returned error discards the copy.
type mutation func(c *domain.Campaign, role domain.Role) error

// mutate runs one read-modify-write cycle. With a zero expectedVersion a
// conflicting concurrent write is retried once against a fresh read.
func (u *CampaignUseCase) mutate(ctx context.Context, p domain.Principal, id string, expectedVersion int64, apply mutation) (*domain.Campaign, error) {
	if err := u.checkPrincipal(p); err != nil {
		return nil, err
	}
	tries := uint(1)
	if expectedVersion == 0 {
		tries = 2
	}
	op := func() (*domain.Campaign, error) {
		cur, err := u.load(ctx, p, id)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		version := cur.Metadata.Version
		if expectedVersion != 0 && version != expectedVersion {
			return nil, backoff.Permanent(domain.ConflictError(id, expectedVersion, version))
		}
		next := cur.Clone()
		if err = apply(&next, p.RoleOn(cur)); err != nil {
			return nil, backoff.Permanent(err)
		}
		next = domain.Recompute(next)
		next.Metadata.ModifiedBy = p.ID
		next.UpdatedAt = u.now().UTC()
		if err = domain.ValidateCampaign(&next); err != nil {
			return nil, backoff.Permanent(err)
		}
		updated, err := u.repo.Update(ctx, next, version)
		if err != nil {
			if expectedVersion == 0 && errors.Is(err, domain.ErrConflict) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return updated, nil
	}
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(u.retryDelay)),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(func(err error, d time.Duration) {
			u.logger.Debug("retrying conflicted campaign write",
				slog.String("campaign_id", id), slog.Duration("delay", d), slog.Any("error", err))
		}),
	)
}

func (u *CampaignUseCase) publish(ctx context.Context, typ domain.ChangeType, p domain.Principal, c *domain.Campaign, from, to domain.Status) {
	if u.publisher == nil {
		return
	}
	e := domain.ChangeEvent{
		ID:             u.newID(),
		Type:           typ,
		CampaignID:     c.ID,
		OrganizationID: c.OrganizationID,
		Version:        c.Metadata.Version,
		Actor:          p.ID,
		From:           from,
		To:             to,
		At:             u.now().UTC(),
	}
	if err := u.publisher.Publish(ctx, e); err != nil {
		u.logger.Warn("publish campaign change failed",
			slog.String("type", string(typ)), slog.String("campaign_id", c.ID), slog.Any("error", err))
	}
}

func (u *CampaignUseCase) checkPrincipal(p domain.Principal) error {
	if p.ID == "" || p.OrganizationID == "" {
		return domain.NewError(domain.ErrForbidden, "principal", "principal is missing an id or organization")
	}
	return nil
}

func orgForbidden(role domain.OrgRole, action string) error {
	return domain.NewError(domain.ErrForbidden, "role", "organization role "+string(role)+" may not "+action).
		WithDetail("role", string(role)).
		WithDetail("action", action)
}

func (u *CampaignUseCase) start(ctx context.Context, name string, p domain.Principal, id string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("organization.id", p.OrganizationID),
		attribute.String("principal.id", p.ID),
	}
	if id != "" {
		attrs = append(attrs, attribute.String("campaign.id", id))
	}
	return u.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
