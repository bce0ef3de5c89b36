package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"vectorlab/internal/calc"
	"vectorlab/internal/geometry/vector"
	"vectorlab/internal/greet"
	"vectorlab/internal/mathutil"
	"vectorlab/internal/metrics"
	"vectorlab/internal/transform"
)

type Server struct {
	eng *calc.Engine
	log *zap.Logger
	mux *http.ServeMux
}

func NewServer(eng *calc.Engine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{eng: eng, log: log, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.health)
	s.mux.HandleFunc("/hello", s.hello)

	s.mux.HandleFunc("/vector/magnitude", s.instrument("vector_magnitude", s.magnitude))
	s.mux.HandleFunc("/vector/normalize", s.instrument("vector_normalize", s.normalize))
	s.mux.HandleFunc("/vector/dot", s.instrument("vector_dot", s.dot))
	s.mux.HandleFunc("/vector/cross", s.instrument("vector_cross", s.cross))
	s.mux.HandleFunc("/vector/transform", s.instrument("vector_transform", s.transformChain))

	s.mux.HandleFunc("/math/add", s.instrument("math_add", s.mathOp(mathutil.Add)))
	s.mux.HandleFunc("/math/subtract", s.instrument("math_subtract", s.mathOp(mathutil.Subtract)))
	s.mux.HandleFunc("/math/multiply", s.instrument("math_multiply", s.mathOp(mathutil.Multiply)))
	s.mux.HandleFunc("/math/divide", s.instrument("math_divide", s.mathDivide))

	s.mux.HandleFunc("/calc", s.instrument("calc_create", s.calcCreate))
	s.mux.HandleFunc("/calc/state", s.instrument("calc_state", s.calcState))
	s.mux.HandleFunc("/calc/add", s.instrument("calc_add", s.calcCommand(calc.CmdAdd)))
	s.mux.HandleFunc("/calc/multiply", s.instrument("calc_multiply", s.calcCommand(calc.CmdMultiply)))
	s.mux.HandleFunc("/calc/reset", s.instrument("calc_reset", s.calcCommand(calc.CmdReset)))
	s.mux.HandleFunc("/calc/stream", s.streamSSE)

	s.mux.Handle("/metrics", metrics.Handler())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) hello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]string{"message": greet.Hello()})
}

func (s *Server) magnitude(w http.ResponseWriter, r *http.Request) {
	var body struct {
		V vector.Vec3 `json:"v"`
	}
	if !decodePost(w, r, &body) {
		return
	}
	writeJSON(w, map[string]float64{"magnitude": body.V.Magnitude()})
}

func (s *Server) normalize(w http.ResponseWriter, r *http.Request) {
	var body struct {
		V vector.Vec3 `json:"v"`
	}
	if !decodePost(w, r, &body) {
		return
	}
	writeJSON(w, map[string]vector.Vec3{"v": body.V.Normalize()})
}

func (s *Server) dot(w http.ResponseWriter, r *http.Request) {
	var body struct {
		A vector.Vec3 `json:"a"`
		B vector.Vec3 `json:"b"`
	}
	if !decodePost(w, r, &body) {
		return
	}
	writeJSON(w, map[string]float64{"dot": body.A.Dot(body.B)})
}

func (s *Server) cross(w http.ResponseWriter, r *http.Request) {
	var body struct {
		A vector.Vec3 `json:"a"`
		B vector.Vec3 `json:"b"`
	}
	if !decodePost(w, r, &body) {
		return
	}
	writeJSON(w, map[string]vector.Vec3{"v": body.A.Cross(body.B)})
}

func (s *Server) transformChain(w http.ResponseWriter, r *http.Request) {
	var body struct {
		V     vector.Vec3      `json:"v"`
		Steps []transform.Spec `json:"steps"`
	}
	if !decodePost(w, r, &body) {
		return
	}

	chain, err := transform.FromSpecs(body.Steps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, warning := chain.Apply(body.V)
	resp := map[string]any{"v": out}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, resp)
}

type scalarPair struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

func (s *Server) mathOp(op func(a, b float64) float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body scalarPair
		if !decodePost(w, r, &body) {
			return
		}
		writeJSON(w, map[string]float64{"result": op(body.A, body.B)})
	}
}

func (s *Server) mathDivide(w http.ResponseWriter, r *http.Request) {
	var body scalarPair
	if !decodePost(w, r, &body) {
		return
	}
	result, err := mathutil.Divide(body.A, body.B)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]float64{"result": result})
}

func (s *Server) calcCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.CreateSession(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

func (s *Server) calcState(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, st)
}

func (s *Server) calcCommand(typ calc.CommandType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID    string  `json:"id"`
			Value float64 `json:"value"`
		}
		if !decodePost(w, r, &body) {
			return
		}
		if body.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}

		now := time.Now()
		var cmd calc.Command
		switch typ {
		case calc.CmdAdd:
			cmd = calc.AddCommand{At: now, Session: body.ID, Value: body.Value}
		case calc.CmdMultiply:
			cmd = calc.MultiplyCommand{At: now, Session: body.ID, Value: body.Value}
		case calc.CmdReset:
			cmd = calc.ResetCommand{At: now, Session: body.ID}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		st, err := s.eng.Apply(ctx, cmd)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, st)
	}
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(st)
			fmt.Fprintf(w, "event: session\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

// decodePost enforces POST and decodes the JSON body, writing the error
// response itself. Returns false when the request was rejected.
func decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) instrument(op string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h(sw, r)

		status := "ok"
		if sw.status >= 400 {
			status = "error"
			s.log.Debug("request failed",
				zap.String("op", op),
				zap.Int("status", sw.status))
		}
		metrics.ObserveRequest(op, status)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
