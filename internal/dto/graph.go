package dto

// LinkQueryRequest asks for the links around one note title.
type LinkQueryRequest struct {
	Title string `json:"title" form:"title" binding:"required,notetitle"`
}

// ResolveRequest checks whether a link from source to target resolves.
// Source is optional; resolution only depends on the target title.
type ResolveRequest struct {
	Source string `json:"source" form:"source"`
	Target string `json:"target" form:"target" binding:"required,notetitle"`
}

// ResolveResponse reports the resolution result for a link.
type ResolveResponse struct {
	Source   string `json:"source,omitempty"`
	Target   string `json:"target"`
	Resolved bool   `json:"resolved"`
}

// GraphStatsResponse summarizes the current graph.
type GraphStatsResponse struct {
	Notes    int `json:"notes"`
	Links    int `json:"links"`
	Dangling int `json:"dangling"`
}
