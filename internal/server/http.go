// Package server exposes expression evaluation over HTTP: create an
// evaluation, list past evaluations, fetch one by id.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aritexpr/ringexpr/internal/expression"
	"github.com/aritexpr/ringexpr/internal/ring"
	"github.com/goccy/go-json"
)

var basePathRegexp = regexp.MustCompile(`^/v1/expressions`)

type evaluation struct {
	Name       string    `json:"name"`
	Expression string    `json:"expression"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	State      string    `json:"state"`
	Result     string    `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	Position   *int      `json:"position,omitempty"`
}

type httpHandler struct {
	ring        ring.Ring[ring.IntElement]
	idBase      uint64
	evaluations sync.Map
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !basePathRegexp.MatchString(r.URL.Path) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if strings.TrimSuffix(r.URL.Path, "/") == "/v1/expressions" {
		switch r.Method {
		case http.MethodGet:
			h.listEvaluations(w, r)
			return

		case http.MethodPost:
			h.createEvaluation(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
	}

	evaluationID := r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]
	switch r.Method {
	case http.MethodGet:
		h.getEvaluation(w, r, evaluationID)
		return

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
}

func (h *httpHandler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var ev *evaluation
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if ev.Expression == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := fmt.Sprintf("%012x", atomic.AddUint64(&h.idBase, 1))
	ev.Name = "/v1/expressions/" + id
	ev.StartTime = time.Now().UTC()
	h.evaluate(ev)
	h.evaluations.Store(id, ev)
	resJSON(w, http.StatusOK, ev)
}

func (h *httpHandler) evaluate(ev *evaluation) {
	defer func() {
		ev.EndTime = time.Now().UTC()
	}()

	expr, err := expression.Parse(ev.Expression, h.ring)
	if err != nil {
		ev.State = "FAILED"
		var parseErr *expression.ParseError
		if errors.As(err, &parseErr) {
			ev.Error = parseErr.Message
			ev.Position = &parseErr.Position
		} else {
			ev.Error = err.Error()
		}
		return
	}

	value, err := expr.Evaluate(h.ring)
	if err != nil {
		ev.State = "FAILED"
		var evalErr *expression.EvalError
		if errors.As(err, &evalErr) {
			ev.Error = evalErr.Message
		} else {
			ev.Error = err.Error()
		}
		return
	}

	ev.State = "SUCCEEDED"
	ev.Result = value.String()
}

func (h *httpHandler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	results := []*evaluation{}
	h.evaluations.Range(func(key, value any) bool {
		results = append(results, value.(*evaluation))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].StartTime.Before(results[j].StartTime)
	})

	resJSON(w, http.StatusOK, map[string][]*evaluation{"evaluations": results})
}

func (h *httpHandler) getEvaluation(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.evaluations.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	resJSON(w, http.StatusOK, ret.(*evaluation))
}

func NewHTTPHandler(r ring.Ring[ring.IntElement]) http.Handler {
	return &httpHandler{ring: r}
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
