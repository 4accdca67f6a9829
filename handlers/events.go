package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"topup/services"
	"topup/utils"
)

// TopupSSEHandler streams session state to the UI as Server-Sent Events.
// Frames are snapshots rendered roughly once per second; the stream ends
// with the terminal frame so the client stops listening on its own.
func (h *TopupHandlers) TopupSSEHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported by client", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sess, active := h.Controller.Session()
	utils.Debug("sse", "Connection established", "session_id", sess.ID, "active", active)

	if err := writeSSEFrame(w, flusher, buildSessionView(sess, active)); err != nil {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			utils.Debug("sse", "Client disconnected", "session_id", sess.ID)
			return
		case <-ticker.C:
			cur, ok := h.Controller.Session()
			view := buildSessionView(cur, ok)
			if err := writeSSEFrame(w, flusher, view); err != nil {
				return
			}
			// Terminal and idle frames are final; the UI acts on the
			// outcome message and closes the stream.
			if !ok || cur.Stage == services.StageTerminal {
				utils.Debug("sse", "Stream complete", "session_id", cur.ID, "stage", view.Stage)
				return
			}
		}
	}
}

func writeSSEFrame(w http.ResponseWriter, flusher http.Flusher, view sessionView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		utils.Error("sse", "Error encoding frame", "error", err)
		return err
	}

	if _, err := fmt.Fprintf(w, "event: topup-update\ndata: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
