package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedrano/tourmarket-backend/api/responses"
	"github.com/lucasmedrano/tourmarket-backend/api/validators"
	"github.com/lucasmedrano/tourmarket-backend/internal/regions"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
)

type upsertRegionRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}

type regionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type regionProductResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"isActive"`
}

type regionGuideResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Bio      *string   `json:"bio,omitempty"`
	PhotoURL *string   `json:"photoUrl,omitempty"`
}

type regionDetailResponse struct {
	regionResponse
	Products   []regionProductResponse `json:"products"`
	TourGuides []regionGuideResponse   `json:"tourGuides"`
}

func newRegionResponse(region *models.Region) regionResponse {
	return regionResponse{
		ID:          region.ID,
		Name:        region.Name,
		Slug:        region.Slug,
		Description: region.Description,
		ImageURL:    region.ImageURL,
		IsActive:    region.IsActive,
		CreatedAt:   region.CreatedAt,
	}
}

func newRegionDetailResponse(region *models.Region) regionDetailResponse {
	products := make([]regionProductResponse, len(region.Products))
	for i, product := range region.Products {
		products[i] = regionProductResponse{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			IsActive: product.IsActive,
		}
	}
	guides := make([]regionGuideResponse, len(region.TourGuides))
	for i, guide := range region.TourGuides {
		guides[i] = regionGuideResponse{
			ID:       guide.ID,
			Name:     guide.Name,
			Bio:      guide.Bio,
			PhotoURL: guide.PhotoURL,
		}
	}
	return regionDetailResponse{
		regionResponse: newRegionResponse(region),
		Products:       products,
		TourGuides:     guides,
	}
}

// RegionList returns every active region sorted by name.
func RegionList(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "regions service unavailable"))
			return
		}

		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items := make([]regionResponse, len(listed))
		for i := range listed {
			items[i] = newRegionResponse(&listed[i])
		}
		responses.WriteSuccess(w, items)
	}
}

// RegionBySlug returns one region with its products and tour guides.
func RegionBySlug(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "regions service unavailable"))
			return
		}

		region, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRegionDetailResponse(region))
	}
}

// RegionCreate registers a new region.
func RegionCreate(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "regions service unavailable"))
			return
		}

		actorID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertRegionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		region, err := svc.Create(r.Context(), regions.CreateParams{
			ActorID:     actorID,
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newRegionResponse(region))
	}
}

// RegionUpdate edits an existing region.
func RegionUpdate(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "regions service unavailable"))
			return
		}

		actorID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		regionID, err := uuid.Parse(chi.URLParam(r, "regionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid region id"))
			return
		}

		var payload upsertRegionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		region, err := svc.Update(r.Context(), regions.UpdateParams{
			ActorID:     actorID,
			RegionID:    regionID,
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			IsActive:    isActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRegionResponse(region))
	}
}

// RegionDelete removes a region.
func RegionDelete(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "regions service unavailable"))
			return
		}

		actorID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		regionID, err := uuid.Parse(chi.URLParam(r, "regionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid region id"))
			return
		}

		if err := svc.Delete(r.Context(), actorID, regionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
