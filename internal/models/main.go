package models

// ModelRegistry lists the models handled by --auto-migrate.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
}
