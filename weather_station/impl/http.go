package impl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/evkuzin/growstation/humidity"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func (ws *weatherStationImpl) newRouter() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", ws.hello).Methods(http.MethodGet)
	r.HandleFunc("/humidity", ws.getHumidity).Methods(http.MethodGet)
	r.HandleFunc("/humidity/list", ws.listHumidity).Methods(http.MethodGet)
	r.HandleFunc("/humidity/history", ws.getHistory).Methods(http.MethodGet)
	r.HandleFunc("/humidity/archive", ws.getArchive).Methods(http.MethodGet)
	r.HandleFunc("/humidity/chart", ws.getChart).Methods(http.MethodGet)
	r.HandleFunc("/humidity/report.pdf", ws.getReport).Methods(http.MethodGet)
	r.HandleFunc("/sensors", ws.getSensors).Methods(http.MethodGet)
	r.HandleFunc("/relay/{name}/{action:toggle|on|off}", ws.switchRelay).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(ws.config.HTTP.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet}),
	)
	ws.accessLog = ws.logger.WriterLevel(logrus.DebugLevel)
	return handlers.LoggingHandler(ws.accessLog, cors(r))
}

func (ws *weatherStationImpl) hello(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "Hello, Grow!")
}

func (ws *weatherStationImpl) getHumidity(w http.ResponseWriter, _ *http.Request) {
	entry, ok := ws.history.Latest()
	if !ok {
		fmt.Fprint(w, "No data")
		return
	}
	fmt.Fprint(w, entry.String())
}

func (ws *weatherStationImpl) listHumidity(w http.ResponseWriter, _ *http.Request) {
	var b strings.Builder
	for _, entry := range ws.history.Snapshot() {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())
}

func (ws *weatherStationImpl) getSensors(w http.ResponseWriter, _ *http.Request) {
	entry, ok := ws.history.Latest()
	if !ok {
		writeJSONError(w, http.StatusServiceUnavailable, "no data")
		return
	}
	writeJSON(w, http.StatusOK, entry.Result)
}

func (ws *weatherStationImpl) getHistory(w http.ResponseWriter, _ *http.Request) {
	readings := ws.history.Snapshot()
	if readings == nil {
		readings = []humidity.Reading{}
	}
	writeJSON(w, http.StatusOK, readings)
}

// getArchive serves archived readings from the last ?since (default 1h).
func (ws *weatherStationImpl) getArchive(w http.ResponseWriter, r *http.Request) {
	if ws.Storage == nil {
		writeJSONError(w, http.StatusNotFound, "archive is disabled")
		return
	}
	since := time.Hour
	if raw := r.URL.Query().Get("since"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid since %q", raw))
			return
		}
		since = d
	}
	events, err := ws.Storage.GetEvents(since)
	if err != nil {
		ws.logger.Warnf("cannot read archive: %s", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "cannot read archive")
		return
	}
	if events == nil {
		events = []humidity.Reading{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (ws *weatherStationImpl) getChart(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	ws.createGraph(w)
}

func (ws *weatherStationImpl) getReport(w http.ResponseWriter, _ *http.Request) {
	var page bytes.Buffer
	if err := renderReport(&page, chronological(ws.history.Snapshot())); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pdf, err := htmlToPDF(&page)
	if err != nil {
		ws.logger.Warnf("cannot build pdf report: %s", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "cannot build pdf report")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(pdf)
}

type relayState struct {
	Name string `json:"name"`
	On   bool   `json:"on"`
}

func (ws *weatherStationImpl) switchRelay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	relay, ok := ws.relays[vars["name"]]
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown relay %q", vars["name"]))
		return
	}

	var err error
	switch vars["action"] {
	case "toggle":
		_, err = relay.Toggle()
	case "on":
		err = relay.On()
	case "off":
		err = relay.Off()
	}
	if err != nil {
		ws.logger.Warnf("relay %s %s: %s", relay.Name(), vars["action"], err.Error())
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, relayState{Name: relay.Name(), On: relay.IsOn()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Warnf("failed to encode json response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
