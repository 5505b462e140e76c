package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/event-forecast/internal/config"
	"github.com/iwvelando/event-forecast/internal/forecast"
	"github.com/iwvelando/event-forecast/internal/optimizer"
	"github.com/iwvelando/event-forecast/pkg/constants"
	"github.com/iwvelando/event-forecast/pkg/output"
	"github.com/iwvelando/event-forecast/pkg/projection"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type forecastOptions struct {
	Optimize bool
}

// NewHandler constructs the HTTP handler that serves the web UI and forecast API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		// Full forecast from a YAML upload or the editor
		r.Post("/forecast", h.handleForecast)
		r.Post("/editor/forecast", h.handleForecastEditor)
		r.Post("/editor/export", h.handleConfigExport)

		// Single engine operations
		r.Post("/matrix", h.handleMatrix)
		r.Post("/summary", h.handleSummary)
		r.Post("/food", h.handleFoodCost)
		r.Post("/categories", h.handleCategories)

		r.Get("/version", h.handleVersion)
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.logRequests"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type forecastResponse struct {
	Scenarios  []string               `json:"scenarios"`
	Forecasts  []forecast.Forecast    `json:"forecasts"`
	Heatmaps   []projection.Heatmap   `json:"heatmaps"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleForecast"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err))
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err))
		return
	}

	opts := forecastOptions{Optimize: coerceBool(r.FormValue("optimize"))}
	h.runForecast(w, configBytes, configMap, start, "server.handleForecast", opts)
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleForecastEditor(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecastEditor"
	start := time.Now()

	var payload map[string]interface{}
	if err := h.decodeJSON(w, r, &payload); err != nil {
		h.respondErrorWithOp(w, statusForDecodeError(err), fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		configPayload = cfgMap
	}

	options := forecastOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid options payload: expected object", op)
			return
		}
		if optimizeVal, ok := optsMap["optimize"]; ok {
			options.Optimize = coerceBool(optimizeVal)
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), op)
		return
	}

	h.runForecast(w, configBytes, configMap, start, op, options)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"

	var payload map[string]interface{}
	if err := h.decodeJSON(w, r, &payload); err != nil {
		h.respondErrorWithOp(w, statusForDecodeError(err), fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

type matrixRequest struct {
	Budget projection.Budget `json:"budget"`
	Inputs projection.Inputs `json:"inputs"`
}

type matrixResponse struct {
	Matrix  projection.ScenarioMatrix `json:"matrix"`
	Heatmap projection.Heatmap        `json:"heatmap"`
}

func (h *handler) handleMatrix(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMatrix"

	var req matrixRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondErrorWithOp(w, statusForDecodeError(err), fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	matrix, err := projection.ComputeScenarioMatrix(req.Budget, req.Inputs)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, matrixResponse{Matrix: matrix, Heatmap: matrix.Heatmap()})
}

type summaryRequest struct {
	Inputs    projection.Inputs           `json:"inputs"`
	LineItems []projection.LineItem       `json:"lineItems"`
	Metrics   []projection.ScenarioMetric `json:"metrics"`
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSummary"

	var req summaryRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondErrorWithOp(w, statusForDecodeError(err), fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	metrics := req.Metrics
	if metrics == nil {
		computed, err := projection.ComputeMetrics(projection.Budget{LineItems: req.LineItems}, req.Inputs)
		if err != nil {
			h.respondEngineError(w, err, op)
			return
		}
		metrics = computed
	}

	summary, err := projection.ComputeSummary(req.Inputs, req.LineItems, metrics)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

type foodRequest struct {
	Inputs    projection.Inputs     `json:"inputs"`
	LineItems []projection.LineItem `json:"lineItems"`
}

func (h *handler) handleFoodCost(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFoodCost"

	var req foodRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondErrorWithOp(w, statusForDecodeError(err), fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	breakdown, err := projection.ComputeFoodCost(req.Inputs, req.LineItems)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, breakdown)
}

type categoriesRequest struct {
	LineItems []projection.LineItem `json:"lineItems"`
}

type categoriesResponse struct {
	TotalCost  float64                      `json:"totalCost"`
	Categories []projection.CategoryTotal   `json:"categories"`
	Historical []projection.HistoricalTotal `json:"historical,omitempty"`
}

func (h *handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCategories"

	var req categoriesRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondErrorWithOp(w, statusForDecodeError(err), fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	totalCost, err := projection.TotalCost(req.LineItems)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	categories, err := projection.CategoryTotals(req.LineItems)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}
	historical, err := projection.HistoricalTotals(req.LineItems)
	if err != nil {
		h.respondEngineError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, categoriesResponse{
		TotalCost:  totalCost,
		Categories: categories,
		Historical: historical,
	})
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "budget", "scenarios"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runForecast(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts forecastOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	var optimizationResult *optimizer.Result
	if opts.Optimize {
		runner, err := optimizer.NewRunner(h.logger, cfg)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to initialize optimizer: %v", err), op)
			return
		}

		optimizationResult, err = runner.Run()
		if err != nil {
			h.respondEngineError(w, fmt.Errorf("optimizer execution failed: %w", err), op)
			return
		}
	}

	results, err := forecast.GetForecast(h.logger, *cfg)
	if err != nil {
		h.respondEngineError(w, fmt.Errorf("failed to compute forecast: %w", err), op)
		return
	}

	if optimizationResult != nil && !optimizationResult.Empty() {
		optimizationResult.Apply(results)
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}
	if results == nil {
		results = []forecast.Forecast{}
	}

	response := forecastResponse{
		Scenarios:  extractScenarioNames(results),
		Forecasts:  results,
		Heatmaps:   buildHeatmaps(results),
		CSV:        output.CsvString(results),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Bool("optimize", opts.Optimize),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	return json.NewDecoder(r.Body).Decode(v)
}

func statusForDecodeError(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// respondEngineError maps projection input errors to 400 and everything else
// to 500.
func (h *handler) respondEngineError(w http.ResponseWriter, err error, op string) {
	var invalid *projection.InvalidInputError
	if errors.As(err, &invalid) {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handleForecast")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("forecast request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func extractScenarioNames(results []forecast.Forecast) []string {
	names := make([]string, 0, len(results))
	for _, scenario := range results {
		names = append(names, scenario.Name)
	}
	return names
}

func buildHeatmaps(results []forecast.Forecast) []projection.Heatmap {
	heatmaps := make([]projection.Heatmap, 0, len(results))
	for _, scenario := range results {
		heatmaps = append(heatmaps, scenario.Projection.Matrix.Heatmap())
	}
	return heatmaps
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
