package asset

type productionKind int

const (
	productionUnset productionKind = iota
	productionFlag
	productionName
)

// ProductionEnvironment the basset.production_environment setting: a boolean, an environment name or nothing
type ProductionEnvironment struct {
	kind productionKind
	flag bool
	name string
}

// ProductionFlag serve compiled bundles (true) in every environment
func ProductionFlag(flag bool) ProductionEnvironment {
	return ProductionEnvironment{kind: productionFlag, flag: flag}
}

// ProductionName serve compiled bundles when the current environment has this name
func ProductionName(name string) ProductionEnvironment {
	return ProductionEnvironment{kind: productionName, name: name}
}

func (p ProductionEnvironment) IsSet() bool {
	return p.kind != productionUnset
}

// Value the setting as read from the configuration: nil, bool or string
func (p ProductionEnvironment) Value() interface{} {
	switch p.kind {
	case productionFlag:
		return p.flag
	case productionName:
		return p.name
	}
	return nil
}

// Permits reports whether compiled bundles may be served in the environment: a true flag, a name
// equal to the environment, or no setting at all with the environment literally "prod" or
// "production". A false flag never permits.
func (p ProductionEnvironment) Permits(environment string) bool {
	switch p.kind {
	case productionFlag:
		return p.flag
	case productionName:
		return environment == p.name
	}
	return environment == "prod" || environment == "production"
}
