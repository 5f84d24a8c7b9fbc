// Package ioweb provides a REST facade over gntaxa.Taxa.
package ioweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	gntaxa "github.com/gnames/gntaxa/pkg"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/errcode"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIPrefix is the path prefix of all endpoints.
const APIPrefix = "/api/v1"

// maxBody limits the size of POST requests.
const maxBody = 1 << 20

// Server serves dispatcher operations over HTTP.
type Server struct {
	cfg    *config.Config
	full   gntaxa.Taxa
	simple gntaxa.Taxa
	enc    gnfmt.GNjson
}

// New creates a Server. The full dispatcher returns tables, the simple
// one returns flat lists. The simplify request parameter selects
// between them, configuration decides when it is absent.
func New(cfg *config.Config, full, simple gntaxa.Taxa) *Server {
	return &Server{cfg: cfg, full: full, simple: simple}
}

// Query is the body of POST requests.
type Query struct {
	Source   string   `json:"source"`
	Names    []string `json:"names"`
	IDs      []string `json:"ids"`
	Rank     string   `json:"rank"`
	Simplify *bool    `json:"simplify"`
}

// Routes returns a chi.Router with all endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/ping", s.ping)
		r.Get("/version", s.version)
		r.Get("/{operation}", s.get)
		r.Post("/{operation}", s.post)
	})
	return r
}

// Run serves requests on the configured port until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.ServerPort),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	slog.Info("Server started", "port", s.cfg.ServerPort)

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong"))
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, versionResponse{
		Version: gntaxa.Version,
		Build:   gntaxa.Build,
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	qr := Query{
		Source: q.Get("source"),
		Names:  values(q["name"], false),
		IDs:    values(q["id"], true),
		Rank:   q.Get("rank"),
	}
	if v := q.Get("simplify"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, http.StatusBadRequest,
				fmt.Errorf("cannot parse simplify value '%s'", v))
			return
		}
		qr.Simplify = &b
	}
	s.run(w, r, qr)
}

func (s *Server) post(w http.ResponseWriter, r *http.Request) {
	var qr Query
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(&qr); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("cannot decode query: %w", err))
		return
	}
	s.run(w, r, qr)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, qr Query) {
	op, err := taxon.NewOperation(chi.URLParam(r, "operation"))
	if err != nil {
		s.fail(w, http.StatusNotFound, err)
		return
	}

	in, err := qr.input()
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	taxa := s.simple
	simplify := s.cfg.Output.Simplify
	if qr.Simplify != nil {
		simplify = *qr.Simplify
	}
	if !simplify {
		taxa = s.full
	}

	res, err := taxa.Run(r.Context(), op, in, qr.Rank)
	if err != nil {
		s.fail(w, status(err), err)
		return
	}
	s.write(w, http.StatusOK, res)
}

func (qr Query) input() (taxon.Input, error) {
	var res taxon.Input
	if qr.Source != "" {
		src, err := taxon.NewSource(qr.Source)
		if err != nil {
			return res, err
		}
		res.Source = src
	}
	res.Names = qr.Names
	for _, v := range qr.IDs {
		id, err := taxon.ParseID(v, res.Source)
		if err != nil {
			return res, err
		}
		res.IDs = append(res.IDs, id)
	}
	return res, nil
}

func (s *Server) write(w http.ResponseWriter, code int, v any) {
	bs, err := s.enc.Encode(v)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(bs)
}

type versionResponse struct {
	Version string `json:"version"`
	Build   string `json:"build"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, code int, err error) {
	slog.Warn("Request failed", "status", code, "error", err)
	s.write(w, code, errorResponse{Error: message(err)})
}

// values drops empty parameters. Identifiers may also come as a
// comma-separated list, names may not since they can contain commas.
func values(vs []string, split bool) []string {
	var res []string
	for _, v := range vs {
		parts := []string{v}
		if split {
			parts = strings.Split(v, ",")
		}
		for _, s := range parts {
			if s = strings.TrimSpace(s); s != "" {
				res = append(res, s)
			}
		}
	}
	return res
}

// status maps dispatcher errors to HTTP status codes.
func status(err error) int {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return http.StatusInternalServerError
	}
	switch gnErr.Code {
	case errcode.NoInputError, errcode.AmbiguousInputError,
		errcode.UnknownSourceError, errcode.UnsupportedSourceError,
		errcode.SourceMismatchError, errcode.UnknownRankError,
		errcode.UnknownOperationError:
		return http.StatusBadRequest
	case errcode.HTTPRequestError, errcode.HTTPStatusError,
		errcode.UnexpectedResponseError, errcode.RateLimitError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// message returns a user-facing text of the error without markup.
func message(err error) string {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return err.Error()
	}
	msg := strings.NewReplacer("<em>", "", "</em>", "").Replace(gnErr.Msg)
	msg = strings.Join(strings.Fields(fmt.Sprintf(msg, gnErr.Vars...)), " ")
	return msg
}
