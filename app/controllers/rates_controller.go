package controllers

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medirate/medirate/app/repository"
	"github.com/medirate/medirate/internal/pkg/cache"
	"github.com/medirate/medirate/internal/pkg/ratefilter"
)

const filtersBootstrapTTL = 5 * time.Minute

// HandleGetRates serves the dashboard's rate search. In full mode it returns
// the matching rows plus the facet options recomputed under the same filters;
// with mode=filters it returns only the category/state bootstrap facets used
// before any filter is chosen.
func HandleGetRates(c *fiber.Ctx) error {
	f := filterSetFromQuery(c)
	repo := repository.GetGlobalFactory().GetRateRepository()

	if c.Query("mode") == "filters" {
		return handleFiltersMode(c, repo, f.ServiceCategory)
	}

	data, err := repo.Query(f)
	if err != nil {
		log.Printf("rate query failed: %v", err)
		return internalError(c)
	}
	options, err := repo.FacetOptions(f)
	if err != nil {
		log.Printf("facet query failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"data":          data,
		"filterOptions": options,
	})
}

// handleFiltersMode serves the bootstrap facets through a short-lived Redis
// cache; the payload only varies by the optional category narrowing.
func handleFiltersMode(c *fiber.Ctx, repo repository.RateRepository, serviceCategory string) error {
	key := "filters:bootstrap:" + strings.ToLower(strings.TrimSpace(serviceCategory))
	if cached, err := cache.Get(key); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	options, err := repo.BootstrapOptions(serviceCategory)
	if err != nil {
		log.Printf("filter bootstrap query failed: %v", err)
		return internalError(c)
	}

	payload := fiber.Map{"filterOptions": options}
	if body, err := json.Marshal(payload); err == nil {
		if err := cache.Set(key, body, filtersBootstrapTTL); err != nil {
			log.Printf("filter bootstrap cache write failed: %v", err)
		}
	}
	return c.JSON(payload)
}

func filterSetFromQuery(c *fiber.Ctx) ratefilter.FilterSet {
	return ratefilter.FilterSet{
		ServiceCategory:    c.Query("serviceCategory"),
		State:              c.Query("state"),
		ServiceCode:        c.Query("serviceCode"),
		ServiceDescription: c.Query("serviceDescription"),
		Program:            c.Query("program"),
		LocationRegion:     c.Query("locationRegion"),
		Modifier:           c.Query("modifier"),
		ProviderType:       c.Query("providerType"),
		StartDate:          c.Query("startDate"),
		EndDate:            c.Query("endDate"),
	}
}
