package fhirclient

import (
	"context"
	"ember-emr-service/internal/app/config"
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/exceptions"
	"ember-emr-service/internal/pkg/fhir_dto"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var supportedMethods = map[string]bool{
	constvars.MethodGet:    true,
	constvars.MethodPost:   true,
	constvars.MethodPut:    true,
	constvars.MethodDelete: true,
}

// Client talks to one FHIR R4 server. It keeps no state between calls and is
// safe for concurrent use.
type Client struct {
	cfg  config.FHIRConfig
	http *resty.Client
	Log  *zap.Logger
}

// NewClient fills the zero fields of cfg from the defaults, merges cfg's
// headers over the default headers and validates the result.
func NewClient(cfg config.FHIRConfig, logger *zap.Logger) (*Client, error) {
	resolved := resolveConfig(cfg)

	baseURL, err := url.Parse(resolved.BaseURL)
	if err != nil || !baseURL.IsAbs() || baseURL.Host == "" {
		if err == nil {
			err = fmt.Errorf("base url %q is not absolute", resolved.BaseURL)
		}
		return nil, exceptions.ErrFHIRInvalidConfiguration(err)
	}
	if resolved.Timeout <= 0 {
		return nil, exceptions.ErrFHIRInvalidConfiguration(fmt.Errorf("timeout %s must be positive", resolved.Timeout))
	}

	httpClient := resty.New().
		SetBaseURL(resolved.BaseURL).
		SetTimeout(resolved.Timeout).
		SetHeaders(resolved.Headers).
		SetRetryCount(0).
		SetLogger(logger.Sugar())
	httpClient.JSONMarshal = json.Marshal
	httpClient.JSONUnmarshal = json.Unmarshal

	return &Client{
		cfg:  resolved,
		http: httpClient,
		Log:  logger,
	}, nil
}

func resolveConfig(cfg config.FHIRConfig) config.FHIRConfig {
	defaults := config.DefaultFHIRConfig()

	resolved := defaults
	if cfg.BaseURL != "" {
		resolved.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout != 0 {
		resolved.Timeout = cfg.Timeout
	}
	if cfg.DefaultPatientID != "" {
		resolved.DefaultPatientID = cfg.DefaultPatientID
	}
	if cfg.Version != "" {
		resolved.Version = cfg.Version
	}
	resolved.Headers = config.MergeHeaders(defaults.Headers, cfg.Headers)
	resolved.SearchDefaults = config.MergeSearchDefaults(defaults.SearchDefaults, cfg.SearchDefaults)
	return resolved
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() config.FHIRConfig {
	cfg := c.cfg
	cfg.Headers = config.MergeHeaders(c.cfg.Headers, nil)
	cfg.SearchDefaults = config.MergeSearchDefaults(c.cfg.SearchDefaults, nil)
	return cfg
}

func (c *Client) DefaultPatientID() string {
	return c.cfg.DefaultPatientID
}

// Request issues exactly one HTTP call to the base URL joined with path.
// A 2xx body is returned as decoded. An empty body is only accepted for
// DELETE or a 204, and yields a nil Resource.
// Every failure after argument checks is a *exceptions.TransportError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (fhir_dto.Resource, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	method = strings.ToUpper(method)
	if !supportedMethods[method] {
		c.Log.Error("fhirClient.Request unsupported method",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
		)
		return nil, exceptions.ErrFHIRUnsupportedMethod(method)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	requestURL := c.cfg.BaseURL + path

	c.Log.Debug("fhirClient.Request called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingURLKey, requestURL),
	)

	req := c.http.R().SetContext(ctx)
	if requestID != "" {
		req.SetHeader(constvars.HeaderXRequestID, requestID)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.Log.Error("fhirClient.Request error marshaling JSON",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		req.SetBody(payload)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		transportErr := exceptions.ErrFHIRSendRequest(err, method, requestURL)
		c.Log.Error("fhirClient.Request error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, requestURL),
			zap.Bool("timeout", transportErr.Timeout),
			zap.Error(err),
		)
		return nil, transportErr
	}

	statusCode := resp.StatusCode()
	rawBody := resp.Body()

	if statusCode < 200 || statusCode > 299 {
		transportErr := exceptions.ErrFHIRUnexpectedStatus(statusCode, outcomeMessage(rawBody), method, requestURL)
		c.Log.Error("fhirClient.Request FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, requestURL),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.String("diagnostics", transportErr.Message),
		)
		return nil, transportErr
	}

	if len(strings.TrimSpace(string(rawBody))) == 0 {
		if method != constvars.MethodDelete && statusCode != constvars.StatusNoContent {
			err := fmt.Errorf(constvars.ErrDevFHIRResponseEmpty, method, requestURL, statusCode)
			c.Log.Error("fhirClient.Request response body is empty",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingURLKey, requestURL),
				zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			)
			return nil, exceptions.ErrFHIRDecodeResponse(err, statusCode, method, requestURL)
		}
		c.Log.Info("fhirClient.Request succeeded with empty body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, requestURL),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
		)
		return nil, nil
	}

	var resource fhir_dto.Resource
	if err := json.Unmarshal(rawBody, &resource); err != nil {
		c.Log.Error("fhirClient.Request error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, requestURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrFHIRDecodeResponse(err, statusCode, method, requestURL)
	}
	if resource.ResourceType() == "" {
		err := fmt.Errorf(constvars.ErrDevFHIRResponseNotResource, method, requestURL)
		c.Log.Error("fhirClient.Request response is not a FHIR resource",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, requestURL),
		)
		return nil, exceptions.ErrFHIRDecodeResponse(err, statusCode, method, requestURL)
	}

	c.Log.Info("fhirClient.Request succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingURLKey, requestURL),
		zap.Int(constvars.LoggingStatusCodeKey, statusCode),
		zap.String(constvars.LoggingResourceTypeKey, resource.ResourceType()),
	)
	return resource, nil
}

// outcomeMessage extracts the first OperationOutcome diagnostics, if the
// error body is one.
func outcomeMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		return ""
	}
	if outcome.ResourceType != constvars.ResourceOperationOutcome {
		return ""
	}
	return outcome.Message()
}

func (c *Client) GetResource(ctx context.Context, resourceType, id string) (fhir_dto.Resource, error) {
	path, err := resourcePath(resourceType, id)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, constvars.MethodGet, path, nil)
}

// SearchResources adds the configured defaults for resourceType under params
// and expects a Bundle back.
func (c *Client) SearchResources(ctx context.Context, resourceType string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	if resourceType == "" {
		return nil, exceptions.ErrFHIRMissingResourceType()
	}

	query := params.WithDefaults(c.cfg.SearchDefaults[resourceType])
	path := "/" + resourceType
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resource, err := c.Request(ctx, constvars.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if resource.ResourceType() != constvars.ResourceBundle {
		requestURL := c.cfg.BaseURL + path
		err := fmt.Errorf(constvars.ErrDevFHIRResponseNotBundle, constvars.MethodGet, requestURL, resource.ResourceType())
		return nil, exceptions.ErrFHIRDecodeResponse(err, constvars.StatusOK, constvars.MethodGet, requestURL)
	}

	bundle := &fhir_dto.Bundle{Resource: resource}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirClient.SearchResources succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entries())),
	)
	return bundle, nil
}

// CreateResource posts resource to the endpoint named by its resourceType.
func (c *Client) CreateResource(ctx context.Context, resource fhir_dto.Resource) (fhir_dto.Resource, error) {
	resourceType := resource.ResourceType()
	if resourceType == "" {
		return nil, exceptions.ErrFHIRMissingResourceType()
	}
	return c.Request(ctx, constvars.MethodPost, "/"+resourceType, resource)
}

func (c *Client) UpdateResource(ctx context.Context, resourceType, id string, resource fhir_dto.Resource) (fhir_dto.Resource, error) {
	path, err := resourcePath(resourceType, id)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, constvars.MethodPut, path, resource)
}

func (c *Client) DeleteResource(ctx context.Context, resourceType, id string) error {
	path, err := resourcePath(resourceType, id)
	if err != nil {
		return err
	}
	_, err = c.Request(ctx, constvars.MethodDelete, path, nil)
	return err
}

func resourcePath(resourceType, id string) (string, error) {
	if resourceType == "" {
		return "", exceptions.ErrFHIRMissingResourceType()
	}
	if id == "" {
		return "", exceptions.ErrFHIRMissingResourceID()
	}
	return "/" + resourceType + "/" + url.PathEscape(id), nil
}

// IsNotFound reports whether err is a FHIR 404.
func IsNotFound(err error) bool {
	var transportErr *exceptions.TransportError
	return errors.As(err, &transportErr) && transportErr.NotFound()
}
