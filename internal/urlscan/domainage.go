package urlscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"prism-lab/internal/domain/models"
	"prism-lab/pkg/logger"
)

// newDomainThresholdDays marks a registration younger than six months as a
// fresh domain, a strong phishing signal.
const newDomainThresholdDays = 180

// DomainAgeChecker resolves registration metadata through the public RDAP
// bootstrap service.
type DomainAgeChecker struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewDomainAgeChecker creates a checker against an RDAP endpoint
func NewDomainAgeChecker(baseURL string, timeout time.Duration, log *logger.Logger) *DomainAgeChecker {
	if baseURL == "" {
		baseURL = "https://rdap.org"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &DomainAgeChecker{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     log.WithComponent("domain_age"),
	}
}

type rdapResponse struct {
	Events []struct {
		EventAction string `json:"eventAction"`
		EventDate   string `json:"eventDate"`
	} `json:"events"`
	Entities []struct {
		Roles      []string        `json:"roles"`
		VcardArray json.RawMessage `json:"vcardArray"`
	} `json:"entities"`
}

// Check looks the domain up over RDAP. Registry outages and unregistered
// domains yield an unavailable result, never an error.
func (c *DomainAgeChecker) Check(ctx context.Context, domain string) models.DomainAge {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/domain/%s", c.baseURL, domain), nil)
	if err != nil {
		return models.DomainAge{Status: models.CheckStatusUnavailable, Error: err.Error()}
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("domain", domain).Msg("rdap lookup failed")
		return models.DomainAge{Status: models.CheckStatusUnavailable, Error: "registration lookup failed"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DomainAge{
			Status: models.CheckStatusUnavailable,
			Error:  fmt.Sprintf("rdap returned status %d", resp.StatusCode),
		}
	}

	var rdap rdapResponse
	if err := json.NewDecoder(resp.Body).Decode(&rdap); err != nil {
		return models.DomainAge{Status: models.CheckStatusUnavailable, Error: "malformed rdap response"}
	}

	var created time.Time
	for _, event := range rdap.Events {
		if event.EventAction == "registration" {
			if t, err := time.Parse(time.RFC3339, event.EventDate); err == nil {
				created = t
			}
			break
		}
	}
	if created.IsZero() {
		return models.DomainAge{Status: models.CheckStatusPartial, Error: "no registration date in rdap record"}
	}

	ageDays := int(time.Since(created).Hours() / 24)
	return models.DomainAge{
		Status:       models.CheckStatusOK,
		AgeDays:      ageDays,
		CreationDate: created.Format("2006-01-02"),
		IsNew:        ageDays < newDomainThresholdDays,
		Registrar:    registrarName(rdap),
	}
}

// registrarName digs the registrar's display name out of the vCard blob.
func registrarName(rdap rdapResponse) string {
	for _, entity := range rdap.Entities {
		for _, role := range entity.Roles {
			if role != "registrar" {
				continue
			}
			var vcard []json.RawMessage
			if err := json.Unmarshal(entity.VcardArray, &vcard); err != nil || len(vcard) < 2 {
				return ""
			}
			var props [][]json.RawMessage
			if err := json.Unmarshal(vcard[1], &props); err != nil {
				return ""
			}
			for _, prop := range props {
				if len(prop) < 4 {
					continue
				}
				var name string
				if err := json.Unmarshal(prop[0], &name); err != nil || name != "fn" {
					continue
				}
				var value string
				if err := json.Unmarshal(prop[3], &value); err == nil {
					return value
				}
			}
		}
	}
	return ""
}
