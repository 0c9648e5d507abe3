// Package store persists bookables and bookings and prices bookings through
// the pricing engine.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/models"
	"github.com/beesaferoot/gorm-bookings/pricing"
)

// Defaults fill in unset bookable fields on creation.
type Defaults struct {
	Currency string
	Unit     pricing.Unit
}

// Resources is the bookable repository.
type Resources struct {
	db       *gorm.DB
	defaults Defaults
}

func NewResources(db *gorm.DB, defaults Defaults) *Resources {
	return &Resources{db: db, defaults: defaults}
}

func (r *Resources) Create(ctx context.Context, b *models.Bookable) error {
	if b.Currency == "" {
		b.Currency = r.defaults.Currency
	}
	if b.Unit == "" {
		b.Unit = string(r.defaults.Unit)
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create bookable: %w", err)
	}
	return nil
}

// Get loads a bookable with its prices, rates and addons in id order and its
// availabilities by priority.
func (r *Resources) Get(ctx context.Context, id uint) (*models.Bookable, error) {
	return loadBookable(r.db.WithContext(ctx), id, true)
}

func (r *Resources) AddRate(ctx context.Context, bookableID uint, rate *models.BookableRate) error {
	db := r.db.WithContext(ctx)
	if _, err := loadBookable(db, bookableID, false); err != nil {
		return err
	}
	rate.BookableID = bookableID
	if err := db.Create(rate).Error; err != nil {
		return fmt.Errorf("failed to add rate: %w", err)
	}
	return nil
}

func (r *Resources) AddPrice(ctx context.Context, bookableID uint, price *models.BookablePrice) error {
	db := r.db.WithContext(ctx)
	if _, err := loadBookable(db, bookableID, false); err != nil {
		return err
	}
	price.BookableID = bookableID
	if err := db.Create(price).Error; err != nil {
		return fmt.Errorf("failed to add price: %w", err)
	}
	return nil
}

// AddAvailability stores a bookable window (IsBookable true) or a blocked
// one for the bookable.
func (r *Resources) AddAvailability(ctx context.Context, bookableID uint, a *models.BookableAvailability) error {
	db := r.db.WithContext(ctx)
	if _, err := loadBookable(db, bookableID, false); err != nil {
		return err
	}
	a.BookableID = bookableID
	if err := db.Create(a).Error; err != nil {
		return fmt.Errorf("failed to add availability: %w", err)
	}
	return nil
}

// Availabilities lists the bookable's availability rules, highest priority
// first. Rules without a priority come last.
func (r *Resources) Availabilities(ctx context.Context, bookableID uint) ([]models.BookableAvailability, error) {
	db := r.db.WithContext(ctx)
	if _, err := loadBookable(db, bookableID, false); err != nil {
		return nil, err
	}
	var out []models.BookableAvailability
	if err := byPriority(db).Where("bookable_id = ?", bookableID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list availabilities: %w", err)
	}
	return out, nil
}

func (r *Resources) RemoveAvailability(ctx context.Context, bookableID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("bookable_id = ?", bookableID).
		Delete(&models.BookableAvailability{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove availability: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}

func (r *Resources) AddAddon(ctx context.Context, bookableID uint, addon *models.BookableAddon) error {
	db := r.db.WithContext(ctx)
	if _, err := loadBookable(db, bookableID, false); err != nil {
		return err
	}
	addon.BookableID = bookableID
	if addon.BaseCostModifier == "" {
		addon.BaseCostModifier = models.ModifierAdd
	}
	if addon.UnitCostModifier == "" {
		addon.UnitCostModifier = models.ModifierAdd
	}
	if err := db.Create(addon).Error; err != nil {
		return fmt.Errorf("failed to add addon: %w", err)
	}
	return nil
}

func (r *Resources) RemoveAddon(ctx context.Context, bookableID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("bookable_id = ?", bookableID).
		Delete(&models.BookableAddon{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove addon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAddonNotFound
	}
	return nil
}

// SetActive activates or deactivates a bookable.
func (r *Resources) SetActive(ctx context.Context, id uint, active bool) (*models.Bookable, error) {
	db := r.db.WithContext(ctx)
	b, err := loadBookable(db, id, false)
	if err != nil {
		return nil, err
	}
	b.IsActive = active
	if err := db.Model(b).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update bookable: %w", err)
	}
	return b, nil
}

// Delete soft-deletes a bookable.
func (r *Resources) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Bookable{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete bookable: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookableNotFound
	}
	return nil
}

func loadBookable(db *gorm.DB, id uint, withPricing bool) (*models.Bookable, error) {
	if withPricing {
		byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
		db = db.Preload("Prices", byID).Preload("Rates", byID).
			Preload("Addons", byID).Preload("Availabilities", byPriority)
	}

	var b models.Bookable
	if err := db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookableNotFound
		}
		return nil, fmt.Errorf("failed to load bookable %d: %w", id, err)
	}
	return &b, nil
}

func byPriority(db *gorm.DB) *gorm.DB {
	return db.Order("priority IS NULL").Order("priority DESC").Order("id")
}

// pricingRequest converts a loaded bookable into an engine request.
func pricingRequest(b *models.Bookable) (pricing.Request, error) {
	cfg, err := b.PricingConfig()
	if err != nil {
		return pricing.Request{}, err
	}
	overrides, err := b.Overrides()
	if err != nil {
		return pricing.Request{}, err
	}
	return pricing.Request{
		Pricing:   cfg,
		Overrides: overrides,
		Rates:     b.RateRules(),
	}, nil
}
