package http

import (
	"net/http"
	"strings"
)

const (
	healthPath      = "/healthz"
	schedulesPath   = "/schedules"
	schedulesPrefix = "/schedules/"
	importPath      = "/schedules/import"
	reportsPrefix   = "/reports/"
	analyzePath     = "/reports/analyze"
)

type RouterConfig struct {
	Schedules  *ScheduleHandler
	Reports    *ReportHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(healthPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			methodNotAllowed(w, http.MethodGet, http.MethodHead)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})

	if cfg.Schedules != nil {
		mux.HandleFunc(schedulesPath, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Schedules.List(w, r)
			case http.MethodPost:
				cfg.Schedules.Save(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc(importPath, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Schedules.Import(w, r)
		})
	}

	if cfg.Schedules != nil || cfg.Reports != nil {
		mux.HandleFunc(schedulesPrefix, func(w http.ResponseWriter, r *http.Request) {
			id, action, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, schedulesPrefix), "/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithScheduleID(r.Context(), id))

			switch action {
			case "":
				if cfg.Schedules == nil {
					http.NotFound(w, r)
					return
				}
				switch r.Method {
				case http.MethodGet:
					cfg.Schedules.Get(w, r)
				case http.MethodDelete:
					cfg.Schedules.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodDelete)
				}
			case "report", "report.xlsx", "publish":
				if cfg.Reports == nil {
					http.NotFound(w, r)
					return
				}
				routeScheduleReport(cfg.Reports, action, w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Reports != nil {
		mux.HandleFunc(analyzePath, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Reports.Analyze(w, r)
		})
		mux.HandleFunc(reportsPrefix, func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, reportsPrefix)
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Reports.Download(w, r.WithContext(ContextWithReportID(r.Context(), id)))
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func routeScheduleReport(h *ReportHandler, action string, w http.ResponseWriter, r *http.Request) {
	if action == "publish" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		h.Publish(w, r)
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if action == "report.xlsx" {
		h.Workbook(w, r)
		return
	}
	h.Report(w, r)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
