package model

// Student is the minimal student projection the core needs: identity plus the
// class/section placement that fee aggregation groups by. Full student
// management lives outside this service.
type Student struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	Section   string `json:"section"`
}
