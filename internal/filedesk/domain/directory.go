package domain

type Unit struct {
	ID       string
	ParentID *string
	Name     string
}

type Person struct {
	ID         string
	UnitID     string
	Name       string
	RegistryNo string
}

type Application struct {
	ID          string
	Name        string
	Endpoint    string
	Description string
}

// AccessRow is one cell of the access matrix, denormalised for display.
type AccessRow struct {
	PersonID        string
	RegistryNo      string
	PersonName      string
	UnitName        string
	ApplicationID   string
	ApplicationName string
	Granted         bool
}
