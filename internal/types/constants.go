package types

const ContextUserKey = "user"

// Route operations, as named in AUTH_ROUTES patterns ("project.get", "*.create").
const (
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Entities served under /v1.
const (
	EntityUser     = "user"
	EntityProject  = "project"
	EntityTask     = "task"
	EntityResource = "resource"
	EntityCategory = "category"
)

var Entities = []string{
	EntityCategory,
	EntityProject,
	EntityUser,
	EntityTask,
	EntityResource,
}
