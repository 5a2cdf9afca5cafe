package models

// Category is the closed classification tag attached to every pattern rule
// and every explanation.
type Category string

const (
	CategoryDatabase       Category = "database"
	CategoryNetwork        Category = "network"
	CategoryDNS            Category = "dns"
	CategoryMemory         Category = "memory"
	CategoryDisk           Category = "disk"
	CategoryProcess        Category = "process"
	CategoryAuthentication Category = "authentication"
	CategorySecurity       Category = "security"
	CategoryTimeout        Category = "timeout"
	CategoryAPI            Category = "api"
	CategoryApplication    Category = "application"
	CategoryConfiguration  Category = "configuration"
	CategoryFilesystem     Category = "filesystem"
	CategorySystem         Category = "system"
	CategoryUnknown        Category = "unknown"
)

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryDatabase, CategoryNetwork, CategoryDNS, CategoryMemory,
		CategoryDisk, CategoryProcess, CategoryAuthentication, CategorySecurity,
		CategoryTimeout, CategoryAPI, CategoryApplication, CategoryConfiguration,
		CategoryFilesystem, CategorySystem, CategoryUnknown:
		return true
	default:
		return false
	}
}
