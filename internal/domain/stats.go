package domain

// Stats представляет сводные показатели системы на момент последней загрузки.
type Stats struct {
	ConnectedTools   int `json:"connectedTools"`
	ConnectedServers int `json:"connectedServers"`
	ActiveAgents     int `json:"activeAgents"`
}

// Dashboard представляет агрегированные данные для главной страницы.
type Dashboard struct {
	Stats          Stats  `json:"stats"`
	RecentUsers    []User `json:"recentUsers"`
	TotalUsers     int    `json:"totalUsers"`
	ConnectedUsers int    `json:"connectedUsers"`
}
