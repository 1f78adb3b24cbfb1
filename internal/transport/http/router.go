package http

import "net/http"

// NewRouter mounts the websocket endpoint, the GIF renderer and the health check.
func NewRouter(ws *WSHandler, gif *GIFHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", ws.ServeWS)
	mux.Handle("/confetti.gif", gif)
	return mux
}
