package models

// ContractType is the closed set of contract tags accepted on a job offer.
type ContractType string

const (
	ContractLongTerm  ContractType = "LONG_TERM"
	ContractShortTerm ContractType = "SHORT_TERM"
	ContractFreelance ContractType = "FREELANCE"
)

var contractTypeLabels = map[ContractType]string{
	ContractLongTerm:  "Long term",
	ContractShortTerm: "Short term",
	ContractFreelance: "Freelance",
}

func (c ContractType) Label() string {
	if label, ok := contractTypeLabels[c]; ok {
		return label
	}
	return string(c)
}

func (c ContractType) Valid() bool {
	_, ok := contractTypeLabels[c]
	return ok
}

func ContractTypes() []ContractType {
	return []ContractType{ContractLongTerm, ContractShortTerm, ContractFreelance}
}

// WorkType is the closed set of work-mode tags accepted on a job offer.
type WorkType string

const (
	WorkOnSite WorkType = "ON_SITE"
	WorkHybrid WorkType = "HYBRID"
	WorkRemote WorkType = "REMOTE"
)

var workTypeLabels = map[WorkType]string{
	WorkOnSite: "On site",
	WorkHybrid: "Hybrid",
	WorkRemote: "Remote",
}

func (w WorkType) Label() string {
	if label, ok := workTypeLabels[w]; ok {
		return label
	}
	return string(w)
}

func (w WorkType) Valid() bool {
	_, ok := workTypeLabels[w]
	return ok
}

func WorkTypes() []WorkType {
	return []WorkType{WorkOnSite, WorkHybrid, WorkRemote}
}
