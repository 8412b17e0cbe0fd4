package leavetype

type LeaveTypeResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsPaid   bool   `json:"is_paid"`
	IsActive bool   `json:"is_active"`
}

func mapToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:       t.ID.String(),
		Code:     t.Code,
		Name:     t.Name,
		IsPaid:   t.IsPaid,
		IsActive: t.IsActive,
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapToResponse(t)
	}
	return resp
}
