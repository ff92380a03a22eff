package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/authz"
	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/server/store"
)

// OnboardingConfig controls first-run provisioning.
type OnboardingConfig struct {
	// Properties is the number of sample properties to seed.
	Properties int `conf:"properties" yaml:"properties" json:"properties"`

	// AdminIdentity is the unrestricted administrator account.
	AdminIdentity string `conf:"admin_identity" yaml:"admin_identity" json:"admin_identity"`

	// AdminSecret is the administrator secret. Demo default, override in
	// any non-local setup.
	AdminSecret string `conf:"admin_secret" yaml:"admin_secret" json:"admin_secret"`
}

func (c *OnboardingConfig) withDefaults() OnboardingConfig {
	out := *c
	if out.Properties <= 0 {
		out.Properties = 12
	}

	if out.AdminIdentity == "" {
		out.AdminIdentity = "admin"
	}

	if out.AdminSecret == "" {
		out.AdminSecret = "superadmin123"
	}

	return out
}

type OnboardingServiceParams struct {
	fx.In

	Config *OnboardingConfig
	Store  *store.Store
}

func NewOnboardingService(params OnboardingServiceParams) *OnboardingService {
	return &OnboardingService{
		config: params.Config.withDefaults(),
		store:  params.Store,
	}
}

// OnboardingService provisions the sample portfolio and its principals on
// first start: one unrestricted admin plus one scoped owner per property.
type OnboardingService struct {
	config OnboardingConfig
	store  *store.Store
}

// EnsureSeeded makes provisioning idempotent: an already seeded store is
// left untouched.
func (s *OnboardingService) EnsureSeeded(ctx context.Context) error {
	seeded, err := s.store.Seeded(ctx)
	if err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}

	if seeded {
		log.Debug(ctx, "store already seeded, skipping onboarding")
		return nil
	}

	if err := s.store.SeedPortfolio(ctx, s.config.Properties); err != nil {
		return fmt.Errorf("failed to seed portfolio: %w", err)
	}

	if err := s.provisionPrincipals(ctx); err != nil {
		return err
	}

	log.Info(ctx, "onboarding complete",
		log.Int("properties", s.config.Properties),
		log.String("admin", s.config.AdminIdentity),
	)

	return nil
}

func (s *OnboardingService) provisionPrincipals(ctx context.Context) error {
	if err := s.createPrincipal(ctx, store.PrincipalRecord{
		Identity: s.config.AdminIdentity,
		Role:     authz.RoleAdmin,
		Scope:    authz.AllResources(),
	}, s.config.AdminSecret); err != nil {
		return err
	}

	properties, err := s.store.Properties(ctx)
	if err != nil {
		return fmt.Errorf("failed to list properties: %w", err)
	}

	for _, p := range properties {
		err := s.createPrincipal(ctx, store.PrincipalRecord{
			Identity: "owner_" + strings.ToLower(p.ID),
			Role:     authz.RoleOwner,
			Scope:    authz.SingleResource(p.ID),
		}, "pass_"+p.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *OnboardingService) createPrincipal(ctx context.Context, rec store.PrincipalRecord, secret string) error {
	if _, err := s.store.FindByIdentity(ctx, rec.Identity); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check principal %q: %w", rec.Identity, err)
	}

	hash, err := HashPassword(secret)
	if err != nil {
		return err
	}

	rec.SecretHash = hash

	return s.store.CreatePrincipal(ctx, rec)
}
