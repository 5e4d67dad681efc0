package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"restaurant-ordering/auth"
	models "restaurant-ordering/model"
	"restaurant-ordering/order"
	"restaurant-ordering/store"
)

type Options struct {
	// Provider may be nil when the identity service is not configured.
	Provider auth.Provider
	State    *auth.State
	// SiteURL is the public origin used for auth redirects.
	SiteURL    string
	SessionTTL time.Duration
	Logger     *zap.Logger
}

type Service struct {
	store   store.Store
	orders  *order.Manager
	auth    auth.Provider
	state   *auth.State
	siteURL string
	log     *zap.Logger
}

func NewService(s store.Store, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	state := opts.State
	if state == nil {
		state = auth.NewState()
	}
	svc := &Service{
		store:   s,
		auth:    opts.Provider,
		state:   state,
		siteURL: strings.TrimRight(opts.SiteURL, "/"),
		log:     log,
	}
	svc.orders = order.NewManager(svc, opts.SessionTTL)
	return svc
}

// Ready reports whether the database answers.
func (s *Service) Ready(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return errors.Wrap(err, "ping store")
	}
	return nil
}

// Orders exposes the session manager so the caller can run its sweeper.
func (s *Service) Orders() *order.Manager { return s.orders }

// LoadCatalog implements order.CatalogLoader.
func (s *Service) LoadCatalog(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.store.ListMenuItems(ctx)
	if err != nil {
		s.log.Error("failed to fetch menu items", zap.Error(err))
		return nil, errors.Wrap(ErrCatalogUnavailable, err.Error())
	}
	out := make([]models.MenuItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, toMenuItem(r))
	}
	return out, nil
}

func (s *Service) ListMenu(ctx context.Context) ([]MenuItemDTO, error) {
	items, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MenuItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toMenuItemDTO(it))
	}
	return out, nil
}

// Categories lists each category once, in menu order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out, nil
}

func (s *Service) CreateMenuItem(ctx context.Context, in MenuItemInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" {
		return "", invalid("name is required")
	}
	if category == "" {
		return "", invalid("category is required")
	}
	if in.Price.IsNegative() {
		return "", invalid("price must be >= 0")
	}
	row := store.MenuItemRow{
		Name:     name,
		Price:    in.Price,
		Category: category,
		Tags:     in.Tags,
	}
	row.Description.String, row.Description.Valid = in.Description, in.Description != ""
	row.ImageURL.String, row.ImageURL.Valid = in.ImageURL, in.ImageURL != ""

	id, err := s.store.CreateMenuItem(ctx, row)
	if err != nil {
		return "", errors.Wrap(err, "create menu item")
	}
	s.log.Info("menu item created", zap.String("id", id), zap.String("name", name))
	return id, nil
}

func toMenuItem(r store.MenuItemRow) models.MenuItem {
	m := models.MenuItem{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Category: r.Category,
		Tags:     r.Tags,
	}
	if r.Description.Valid {
		m.Description = r.Description.String
	}
	if r.ImageURL.Valid {
		m.ImageURL = r.ImageURL.String
	}
	return m
}

func toMenuItemDTO(m models.MenuItem) MenuItemDTO {
	dto := MenuItemDTO{MenuItem: m}
	for _, tag := range m.Tags {
		dto.TagIcons = append(dto.TagIcons, TagDTO{Label: tag, Icon: TagIcon(tag)})
	}
	return dto
}

// DTOs
type MenuItemDTO struct {
	models.MenuItem
	TagIcons []TagDTO `json:"tag_icons,omitempty"`
}

type TagDTO struct {
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

type MenuItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

type ContactForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

type SignUpForm struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	ZipCode         string `json:"zip_code,omitempty"`
	EmailSubscribe  bool   `json:"email_subscribe"`
	SmsSubscribe    bool   `json:"sms_subscribe"`
	TermsAgreed     bool   `json:"terms_agreed"`
}
