package monitor

import "net/http"

func (m *Monitor) routes() {
	m.router.HandleFunc("/api/v1.0/devices", m.devicesHdlr).Methods("GET")
	m.router.HandleFunc("/api/v1.0/device/{device}/volume", m.deviceVolumeHdlr)
	m.router.HandleFunc("/api/v1.0/device/{device}/mute", m.deviceMuteHdlr)
	m.router.HandleFunc("/api/v1.0/events", m.eventsHdlr).Methods("GET")
	m.router.HandleFunc("/ws", m.webSocketHdlr)
	m.router.PathPrefix("/").Handler(http.FileServer(webFS()))
}
