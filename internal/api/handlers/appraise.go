package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cabloomi/inventory/internal/engine"
	"github.com/cabloomi/inventory/pkg/extract"
	domain "github.com/cabloomi/inventory/pkg/types"
)

// Appraiser is the engine surface the appraise handlers need.
type Appraiser interface {
	Appraise(ctx context.Context, req engine.AppraiseRequest) (engine.Appraisal, error)
	AppraiseByIMEI(ctx context.Context, imei string, cond domain.Condition) (engine.Appraisal, error)
	AppraiseBatch(ctx context.Context, reqs []engine.AppraiseRequest) ([]engine.BatchItem, error)
}

// AppraiseHandler handles device appraisal requests.
type AppraiseHandler struct {
	engine Appraiser
}

// NewAppraiseHandler creates a new AppraiseHandler.
func NewAppraiseHandler(eng Appraiser) *AppraiseHandler {
	return &AppraiseHandler{engine: eng}
}

// AppraiseItem is one appraisal request. Attributes carry the raw lookup
// provider object; field order in that object is significant for carrier
// inference, so it is decoded from the raw JSON rather than a Go map.
type AppraiseItem struct {
	Description string          `json:"description,omitempty" doc:"Free-form device description" example:"IPHONE 15 PRO 256GB DESERT-USA"`
	IMEI        string          `json:"imei,omitempty" doc:"Device IMEI to resolve through the lookup provider" example:"356728115997001"`
	Condition   string          `json:"condition,omitempty" enum:"new,used" doc:"Device condition (default used)"`
	Attributes  json.RawMessage `json:"attributes,omitempty" doc:"Raw attribute object from the lookup provider"`
}

// AppraiseInput is the request body for the appraise endpoint.
type AppraiseInput struct {
	Body AppraiseItem
}

// AppraisalBody is one appraisal result.
type AppraisalBody struct {
	Description        string  `json:"description" doc:"Description the match was computed from"`
	Brand              string  `json:"brand" example:"apple"`
	Condition          string  `json:"condition" example:"used"`
	Generation         int     `json:"generation,omitempty" doc:"Device generation extracted from the description" example:"15"`
	Tier               string  `json:"tier,omitempty" doc:"Device tier extracted from the description" example:"pro"`
	StorageGB          int     `json:"storage_gb,omitempty" doc:"Storage capacity extracted from the description" example:"256"`
	Color              string  `json:"color,omitempty" doc:"Marketing color extracted from the description" example:"desert"`
	Carrier            string  `json:"carrier,omitempty" example:"Verizon"`
	Unlocked           bool    `json:"unlocked"`
	ICloudLockOn       bool    `json:"icloud_lock_on"`
	Matched            bool    `json:"matched"`
	DeviceLabel        string  `json:"device_label,omitempty" doc:"Matched catalog row label"`
	Category           string  `json:"category,omitempty" doc:"Matched catalog row category"`
	Confidence         float64 `json:"confidence" minimum:"0" maximum:"1"`
	PurchasePriceCents int64   `json:"purchase_price_cents"`
	BasePriceCents     int64   `json:"base_price_cents"`
}

// AppraiseOutput is the response body for the appraise endpoint.
type AppraiseOutput struct {
	Body AppraisalBody
}

// Appraise evaluates one device against the current catalog. When an IMEI
// is supplied the device attributes come from the lookup provider;
// otherwise the description and inline attributes are used directly.
func (h *AppraiseHandler) Appraise(ctx context.Context, input *AppraiseInput) (*AppraiseOutput, error) {
	item := input.Body
	if item.Description == "" && item.IMEI == "" && len(item.Attributes) == 0 {
		return nil, huma.Error422UnprocessableEntity(
			"one of description, imei, or attributes is required",
		)
	}

	appraisal, err := h.appraiseItem(ctx, item)
	if err != nil {
		if errors.Is(err, engine.ErrNoProvider) {
			return nil, huma.Error503ServiceUnavailable("device lookup is not configured")
		}
		return nil, huma.Error502BadGateway("appraisal failed: " + err.Error())
	}

	return &AppraiseOutput{Body: toAppraisalBody(appraisal)}, nil
}

// BatchInput is the request body for the batch appraise endpoint.
type BatchInput struct {
	Body struct {
		Items []AppraiseItem `json:"items" minItems:"1" maxItems:"500" doc:"Appraisal requests, evaluated with bounded concurrency"`
	}
}

// BatchResult pairs one batch item with its result or error.
type BatchResult struct {
	Appraisal *AppraisalBody `json:"appraisal,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// BatchOutput is the response body for the batch appraise endpoint.
type BatchOutput struct {
	Body struct {
		Results []BatchResult `json:"results" doc:"One result per submitted item, in input order"`
	}
}

// AppraiseBatch evaluates a set of devices. Items with an IMEI are resolved
// through the lookup provider sequentially so provider pacing applies;
// inline items go through the engine's bounded-concurrency batch path.
func (h *AppraiseHandler) AppraiseBatch(ctx context.Context, input *BatchInput) (*BatchOutput, error) {
	results := make([]BatchResult, len(input.Body.Items))

	reqs := make([]engine.AppraiseRequest, 0, len(input.Body.Items))
	reqIdx := make([]int, 0, len(input.Body.Items))

	for i, item := range input.Body.Items {
		if item.IMEI != "" {
			appraisal, err := h.appraiseItem(ctx, item)
			if err != nil {
				results[i] = BatchResult{Error: err.Error()}
				continue
			}
			body := toAppraisalBody(appraisal)
			results[i] = BatchResult{Appraisal: &body}
			continue
		}

		req, err := toEngineRequest(item)
		if err != nil {
			results[i] = BatchResult{Error: err.Error()}
			continue
		}
		reqs = append(reqs, req)
		reqIdx = append(reqIdx, i)
	}

	if len(reqs) > 0 {
		items, err := h.engine.AppraiseBatch(ctx, reqs)
		if err != nil {
			return nil, huma.Error502BadGateway("batch appraisal failed: " + err.Error())
		}
		for _, item := range items {
			i := reqIdx[item.Index]
			if item.Err != nil {
				results[i] = BatchResult{Error: item.Err.Error()}
				continue
			}
			body := toAppraisalBody(item.Appraisal)
			results[i] = BatchResult{Appraisal: &body}
		}
	}

	out := &BatchOutput{}
	out.Body.Results = results
	return out, nil
}

func (h *AppraiseHandler) appraiseItem(ctx context.Context, item AppraiseItem) (engine.Appraisal, error) {
	if item.IMEI != "" {
		return h.engine.AppraiseByIMEI(ctx, item.IMEI, domain.Condition(item.Condition))
	}

	req, err := toEngineRequest(item)
	if err != nil {
		return engine.Appraisal{}, err
	}
	return h.engine.Appraise(ctx, req)
}

func toEngineRequest(item AppraiseItem) (engine.AppraiseRequest, error) {
	req := engine.AppraiseRequest{
		Description: item.Description,
		Condition:   domain.Condition(item.Condition),
	}

	if len(item.Attributes) > 0 {
		payload, err := extract.ParsePayload(item.Attributes)
		if err != nil {
			return engine.AppraiseRequest{}, err
		}
		req.Payload = payload
	}

	return req, nil
}

func toAppraisalBody(a engine.Appraisal) AppraisalBody {
	body := AppraisalBody{
		Description:        a.Description,
		Brand:              string(a.Brand),
		Condition:          string(a.Condition),
		Generation:         a.Signature.Generation,
		Tier:               string(a.Signature.Tier),
		StorageGB:          a.Signature.StorageGB,
		Color:              a.Signature.Color,
		Carrier:            a.Carrier.Carrier,
		Unlocked:           a.Carrier.Unlocked,
		ICloudLockOn:       a.Carrier.ICloudLockOn,
		Matched:            a.Match.Row != nil,
		Confidence:         a.Match.Confidence,
		PurchasePriceCents: a.Match.PurchasePriceCents,
		BasePriceCents:     a.Match.BasePriceCents,
	}
	if a.Match.Row != nil {
		body.DeviceLabel = a.Match.Row.DeviceLabel
		body.Category = a.Match.Row.Category
	}
	return body
}

// RegisterAppraiseRoutes registers appraisal endpoints with the Huma API.
func RegisterAppraiseRoutes(api huma.API, h *AppraiseHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "appraise-device",
		Method:      http.MethodPost,
		Path:        "/api/v1/appraise",
		Summary:     "Appraise a device",
		Description: "Matches a device description or lookup payload against the price catalog and returns the purchase price with a confidence score.",
		Tags:        []string{"appraise"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.Appraise)

	huma.Register(api, huma.Operation{
		OperationID: "appraise-batch",
		Method:      http.MethodPost,
		Path:        "/api/v1/appraise/batch",
		Summary:     "Appraise a batch of devices",
		Description: "Evaluates multiple appraisal requests with bounded concurrency, returning one result per item in input order.",
		Tags:        []string{"appraise"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.AppraiseBatch)
}
