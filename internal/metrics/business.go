package metrics

// IncrementCompanyCreated increments company creation counter
func (m *Metrics) IncrementCompanyCreated() {
	m.safeExecute("IncrementCompanyCreated", func() {
		m.CompanyCreatedTotal.Inc()
	})
}

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementItemCreated increments item creation counter
func (m *Metrics) IncrementItemCreated() {
	m.safeExecute("IncrementItemCreated", func() {
		m.ItemCreatedTotal.Inc()
	})
}

// RecordCellCommit counts a cell edit by column type; ok=false means the value was rejected
func (m *Metrics) RecordCellCommit(columnType string, ok bool) {
	m.safeExecute("RecordCellCommit", func() {
		result := "ok"
		if !ok {
			result = "rejected"
		}
		m.CellCommitsTotal.WithLabelValues(columnType, result).Inc()
	})
}

// IncrementInvitationIssued counts an issued invitation. kind is "email" or "access_code".
func (m *Metrics) IncrementInvitationIssued(kind string) {
	m.safeExecute("IncrementInvitationIssued", func() {
		m.InvitationsIssuedTotal.WithLabelValues(kind).Inc()
	})
}

// RecordRedemption counts a redemption attempt and its outcome
func (m *Metrics) RecordRedemption(kind, outcome string) {
	m.safeExecute("RecordRedemption", func() {
		m.RedemptionsTotal.WithLabelValues(kind, outcome).Inc()
	})
}

// IncrementRealtimeEvent counts a published row change event
func (m *Metrics) IncrementRealtimeEvent(event string) {
	m.safeExecute("IncrementRealtimeEvent", func() {
		m.RealtimeEventsPublished.WithLabelValues(event).Inc()
	})
}

// AddWebsocketClients moves the connected subscriber gauge by delta
func (m *Metrics) AddWebsocketClients(delta int) {
	m.safeExecute("AddWebsocketClients", func() {
		m.WebsocketClients.Add(float64(delta))
	})
}

// SetCompaniesTotal sets total companies gauge
func (m *Metrics) SetCompaniesTotal(count int64) {
	m.safeExecute("SetCompaniesTotal", func() {
		m.CompaniesTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetItemsTotal sets total items gauge
func (m *Metrics) SetItemsTotal(count int64) {
	m.safeExecute("SetItemsTotal", func() {
		m.ItemsTotal.Set(float64(count))
	})
}

// SetPendingInvitationsTotal sets pending invitations gauge
func (m *Metrics) SetPendingInvitationsTotal(count int64) {
	m.safeExecute("SetPendingInvitationsTotal", func() {
		m.PendingInvitationsTotal.Set(float64(count))
	})
}
