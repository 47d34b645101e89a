package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/go-tangra/go-tangra-mainboard/internal/board"
	"github.com/go-tangra/go-tangra-mainboard/internal/convert"
	"github.com/go-tangra/go-tangra-mainboard/internal/store"
)

// Handler serves the board registry HTTP API.
type Handler struct {
	store      *store.Store
	formFactor string
	version    string
	log        *log.Helper
}

// NewHandler creates an HTTP handler backed by the given store. formFactor
// is the reference board served by the component and status routes when the
// request does not name one.
func NewHandler(s *store.Store, formFactor, version string, logger log.Logger) *Handler {
	return &Handler{
		store:      s,
		formFactor: formFactor,
		version:    version,
		log:        log.NewHelper(logger),
	}
}

type componentsResponse struct {
	FormFactor string             `json:"form_factor"`
	Count      int                `json:"count"`
	Components []*board.Component `json:"components"`
}

type statusResponse struct {
	FormFactor string                  `json:"form_factor"`
	Statuses   map[string]board.Status `json:"statuses"`
}

type registerBoardRequest struct {
	FormFactor string `json:"form_factor"`
}

type boardSummary struct {
	ID             string    `json:"id"`
	FormFactor     string    `json:"form_factor"`
	ComponentCount int       `json:"component_count"`
	KindCount      int       `json:"kind_count"`
	RegisteredAt   time.Time `json:"registered_at"`
}

type listBoardsResponse struct {
	Boards     []boardSummary `json:"boards"`
	TotalCount int            `json:"total_count"`
}

type getBoardResponse struct {
	ID           string          `json:"id"`
	RegisteredAt time.Time       `json:"registered_at"`
	Board        *board.Snapshot `json:"board"`
}

func (h *Handler) requestFormFactor(ctx kratoshttp.Context) string {
	if ff := ctx.Query().Get("form_factor"); ff != "" {
		return ff
	}
	return h.formFactor
}

// ListComponents handles GET /api/v1/components.
func (h *Handler) ListComponents(ctx kratoshttp.Context) error {
	ff := h.requestFormFactor(ctx)

	next := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		m := board.New(ff)
		components := m.Components()
		return &componentsResponse{
			FormFactor: m.FormFactor,
			Count:      len(components),
			Components: components,
		}, nil
	})

	out, err := next(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// ComponentStatus handles GET /api/v1/status. The returned map keeps one
// entry per component kind, so same-kind slots collapse to a single key.
func (h *Handler) ComponentStatus(ctx kratoshttp.Context) error {
	ff := h.requestFormFactor(ctx)

	next := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		m := board.New(ff)
		return &statusResponse{
			FormFactor: m.FormFactor,
			Statuses:   m.VerifyComponents(),
		}, nil
	})

	out, err := next(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// Diagnostics handles GET /api/v1/diagnostics. No telemetry source ships
// with the registry, so this reports the missing capability rather than
// fabricating readings.
func (h *Handler) Diagnostics(ctx kratoshttp.Context) error {
	ff := h.requestFormFactor(ctx)

	next := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		diag, err := board.New(ff).RunDiagnostics()
		if err != nil {
			if errors.Is(err, board.ErrTelemetryUnavailable) {
				return nil, kerrors.New(http.StatusNotImplemented, "TELEMETRY_UNIMPLEMENTED", err.Error())
			}
			return nil, kerrors.InternalServer("DIAGNOSTICS_FAILED", err.Error())
		}
		return diag, nil
	})

	out, err := next(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// RegisterBoard handles POST /api/v1/boards.
func (h *Handler) RegisterBoard(ctx kratoshttp.Context) error {
	var in registerBoardRequest
	if err := ctx.Bind(&in); err != nil {
		return kerrors.BadRequest("INVALID_BODY", "invalid JSON body")
	}
	if in.FormFactor == "" {
		in.FormFactor = h.formFactor
	}

	next := ctx.Middleware(func(c context.Context, req any) (any, error) {
		r := req.(*registerBoardRequest)

		m := board.New(r.FormFactor)
		rec, err := convert.BoardToRecord(uuid.NewString(), m, time.Now().UTC())
		if err != nil {
			return nil, kerrors.InternalServer("ENCODE_BOARD", err.Error())
		}

		if err := h.store.Insert(c, rec); err != nil {
			return nil, kerrors.InternalServer("STORE_BOARD", err.Error())
		}

		h.log.Infof("registered board %s (%s)", rec.ID, rec.FormFactor)

		return &boardSummary{
			ID:             rec.ID,
			FormFactor:     rec.FormFactor,
			ComponentCount: rec.ComponentCount,
			KindCount:      rec.KindCount,
			RegisteredAt:   rec.RegisteredAt,
		}, nil
	})

	out, err := next(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusCreated, out)
}

// ListBoards handles GET /api/v1/boards.
func (h *Handler) ListBoards(ctx kratoshttp.Context) error {
	filter := store.ListFilter{
		FormFactor: ctx.Query().Get("form_factor"),
	}
	filter.Page, _ = strconv.Atoi(ctx.Query().Get("page"))
	filter.PageSize, _ = strconv.Atoi(ctx.Query().Get("page_size"))

	next := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		records, total, err := h.store.List(c, filter)
		if err != nil {
			return nil, kerrors.InternalServer("LIST_BOARDS", err.Error())
		}

		boards := make([]boardSummary, len(records))
		for i, rec := range records {
			boards[i] = boardSummary{
				ID:             rec.ID,
				FormFactor:     rec.FormFactor,
				ComponentCount: rec.ComponentCount,
				KindCount:      rec.KindCount,
				RegisteredAt:   rec.RegisteredAt,
			}
		}

		return &listBoardsResponse{Boards: boards, TotalCount: total}, nil
	})

	out, err := next(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// GetBoard handles GET /api/v1/boards/{id}.
func (h *Handler) GetBoard(ctx kratoshttp.Context) error {
	id := ctx.Vars().Get("id")

	next := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		rec, err := h.store.Get(c, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, kerrors.NotFound("BOARD_NOT_FOUND", "board "+id+" not found")
			}
			return nil, kerrors.InternalServer("GET_BOARD", err.Error())
		}

		snap, err := convert.RecordToSnapshot(rec)
		if err != nil {
			return nil, kerrors.InternalServer("DECODE_BOARD", err.Error())
		}

		return &getBoardResponse{
			ID:           rec.ID,
			RegisteredAt: rec.RegisteredAt,
			Board:        snap,
		}, nil
	})

	out, err := next(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// DeleteBoard handles DELETE /api/v1/boards/{id}.
func (h *Handler) DeleteBoard(ctx kratoshttp.Context) error {
	id := ctx.Vars().Get("id")

	next := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		if err := h.store.Delete(c, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, kerrors.NotFound("BOARD_NOT_FOUND", "board "+id+" not found")
			}
			return nil, kerrors.InternalServer("DELETE_BOARD", err.Error())
		}
		return &struct{}{}, nil
	})

	out, err := next(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// Health handles GET /healthz. Registered outside the Kratos middleware
// chain so it needs no API key. Returns 503 when the database is
// unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}
