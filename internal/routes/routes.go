package routes

const (
	// Health
	Health = "/health"

	// Properties
	Properties   = "/api/v1/properties"
	PropertyByID = "/api/v1/properties/{id}"

	// Units
	Units    = "/api/v1/units"
	UnitByID = "/api/v1/units/{id}"

	// Inspections
	Inspections          = "/api/v1/inspections"
	InspectionByID       = "/api/v1/inspections/{id}"
	InspectionConnected  = "/api/v1/inspections/{id}/connected"
	InspectionsComplete  = "/api/v1/inspections/complete"
	InspectionsDelete    = "/api/v1/inspections/delete"
	InspectionsAnalytics = "/api/v1/analytics/summary"

	// Subtasks
	Subtasks       = "/api/v1/subtasks"
	SubtaskByID    = "/api/v1/subtasks/{id}"
	SubtaskAssign  = "/api/v1/subtasks/{id}/assign"

	// Templates
	Templates      = "/api/v1/templates"
	TemplateByID   = "/api/v1/templates/{id}"
	TemplatesApply = "/api/v1/templates/apply"

	// Inventory types
	InventoryTypes      = "/api/v1/inventory-types"
	InventoryTypeByID   = "/api/v1/inventory-types/{id}"

	// Profiles
	Profiles    = "/api/v1/profiles"
	ProfileByID = "/api/v1/profiles/{id}"

	// Cascade delete (property or unit subtree)
	CascadeDelete = "/api/v1/cascade-delete"

	// Attachment proxy
	Attachments = "/api/v1/attachments"
)
