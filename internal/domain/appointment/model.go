package appointment

// Appointment is the consultation record stored in the provider's custom
// object store. Timestamps are RFC 3339 strings as stored.
type Appointment struct {
	ID          string `json:"_id"`
	UserID      string `json:"user_id,omitempty"`
	ClientID    string `json:"client_id"`
	ProviderID  string `json:"provider_id"`
	DialogID    string `json:"dialog_id,omitempty"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Priority    int    `json:"priority,omitempty"`
	Language    string `json:"language,omitempty"`
	DateStart   string `json:"date_start,omitempty"`
	DateEnd     string `json:"date_end,omitempty"`
	Conclusion  string `json:"conclusion,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// UpdateRequest is a partial appointment mutation. Nil fields are left
// untouched.
type UpdateRequest struct {
	ProviderID  *string `json:"provider_id,omitempty"`
	Description *string `json:"description,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	DateStart   *string `json:"date_start,omitempty"`
	DateEnd     *string `json:"date_end,omitempty"`
	Conclusion  *string `json:"conclusion,omitempty"`
}

// patch converts the request into the partial-update document sent to the
// object store. Only set fields appear.
func (r UpdateRequest) patch() map[string]interface{} {
	p := make(map[string]interface{})
	if r.ProviderID != nil {
		p["provider_id"] = *r.ProviderID
	}
	if r.Description != nil {
		p["description"] = *r.Description
	}
	if r.Notes != nil {
		p["notes"] = *r.Notes
	}
	if r.Priority != nil {
		p["priority"] = *r.Priority
	}
	if r.DateStart != nil {
		p["date_start"] = *r.DateStart
	}
	if r.DateEnd != nil {
		p["date_end"] = *r.DateEnd
	}
	if r.Conclusion != nil {
		p["conclusion"] = *r.Conclusion
	}
	return p
}

// AccessList grants a named access level to an explicit set of user ids.
type AccessList struct {
	Access string   `json:"access"`
	IDs    []string `json:"ids"`
}

// OpenForUsers builds a per-user grant, dropping empty ids.
func OpenForUsers(ids ...string) *AccessList {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			kept = append(kept, id)
		}
	}
	return &AccessList{Access: "open_for_users_ids", IDs: kept}
}

// Permissions describes who may read, update and delete an object.
type Permissions struct {
	Read   *AccessList `json:"read,omitempty"`
	Update *AccessList `json:"update,omitempty"`
	Delete *AccessList `json:"delete,omitempty"`
}

// AppointmentPermissions grants the admin, provider and client full access to
// an appointment.
func AppointmentPermissions(adminID, providerID, clientID string) Permissions {
	return Permissions{
		Read:   OpenForUsers(adminID, providerID, clientID),
		Update: OpenForUsers(adminID, providerID, clientID),
		Delete: OpenForUsers(adminID, providerID, clientID),
	}
}

// RecordPermissions grants the admin and provider access to a consultation
// record. Clients never see records.
func RecordPermissions(adminID, providerID string) Permissions {
	return Permissions{
		Read:   OpenForUsers(adminID, providerID),
		Update: OpenForUsers(adminID, providerID),
	}
}
