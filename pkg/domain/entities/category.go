package entities

// CategoryID identifies a category within a product model
type CategoryID string

// Category ids shared by every model in the catalog
const (
	CategoryRange             CategoryID = "range"
	CategoryDiaphragm         CategoryID = "diaphragm"
	CategoryFillFluid         CategoryID = "fillFluid"
	CategoryProcessConnection CategoryID = "processConnection"
	CategoryHousing           CategoryID = "housing"
	CategoryOutput            CategoryID = "output"

	CategoryExplosionProof CategoryID = "explosionProof"
	CategoryConnector      CategoryID = "electricalConnector"
	CategoryDisplay        CategoryID = "display"
	CategoryBracket        CategoryID = "bracket"
	CategoryManifold       CategoryID = "manifold"
	CategoryWeldNeck       CategoryID = "weldNeck"

	CategoryManifoldProcess     CategoryID = "manifoldProcess"
	CategoryManifoldMaterial    CategoryID = "manifoldMaterial"
	CategoryManifoldTransmitter CategoryID = "manifoldTransmitter"
	CategoryManifoldBolts       CategoryID = "manifoldBolts"
	CategoryManifoldPressure    CategoryID = "manifoldPressure"
	CategoryManifoldSeal        CategoryID = "manifoldSeal"
	CategoryManifoldTemperature CategoryID = "manifoldTemperature"
	CategoryManifoldPlug        CategoryID = "manifoldPlug"
	CategoryManifoldMisc        CategoryID = "manifoldMisc"
)

// ManifoldSpectrumOrder is the wire order of the manifold model number.
// Encode and DecodeManifold both depend on it.
var ManifoldSpectrumOrder = []CategoryID{
	CategoryManifoldProcess,
	CategoryManifoldMaterial,
	CategoryManifoldTransmitter,
	CategoryManifoldBolts,
	CategoryManifoldPressure,
	CategoryManifoldSeal,
	CategoryManifoldTemperature,
	CategoryManifoldPlug,
	CategoryManifoldMisc,
}

// Part groups categories into order-code lines
type Part int

const (
	PartRequired Part = iota
	PartAdditional
	PartManifold
)

// String method for Part enum
func (p Part) String() string {
	switch p {
	case PartRequired:
		return "required"
	case PartAdditional:
		return "additional"
	case PartManifold:
		return "manifold"
	default:
		return "unknown"
	}
}

// ParsePart converts a part name into a Part
func ParsePart(s string) (Part, bool) {
	switch s {
	case "required":
		return PartRequired, true
	case "additional":
		return PartAdditional, true
	case "manifold":
		return PartManifold, true
	default:
		return 0, false
	}
}

// ValidatorID names the compatibility rule attached to a category
type ValidatorID string

const (
	ValidatorNone      ValidatorID = ""
	ValidatorConnector ValidatorID = "connector"
	ValidatorManifold  ValidatorID = "manifold"
	ValidatorWeldNeck  ValidatorID = "weldNeck"
)

// Category is one configurable aspect of a product model
type Category struct {
	ID        CategoryID
	Title     string
	Part      Part
	Sequence  int
	Validator ValidatorID
	Options   []Option
}

// Option looks up an option by code
func (c *Category) Option(code OptionCode) (Option, bool) {
	for _, opt := range c.Options {
		if opt.OptionCode() == code {
			return opt, true
		}
	}
	return nil, false
}

// HasOption reports whether code is listed in the category
func (c *Category) HasOption(code OptionCode) bool {
	_, ok := c.Option(code)
	return ok
}
