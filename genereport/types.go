package genereport

// Column labels of the gene report table. Row decoding only accepts these.
const (
	labelGene            = "gene"
	labelReference       = "reference"
	labelRiskAllele      = "riskallele"
	labelMAF             = "maf"
	labelLifestyleFactor = "lifestylefactor"
	labelNutrientEffects = "nutrienteffects"
	labelGeneEffects     = "geneeffects"
	labelCondition       = "condition"
)

// reportLabels lists every column a well-formed row must carry.
var reportLabels = []string{
	labelGene,
	labelReference,
	labelRiskAllele,
	labelMAF,
	labelLifestyleFactor,
	labelNutrientEffects,
	labelGeneEffects,
	labelCondition,
}

// ReportLine is one decoded row of the gene report. All fields are populated
// at construction; rows missing any column never produce a ReportLine.
type ReportLine struct {
	Gene             string `json:"gene"`
	ReferenceNumber  string `json:"reference_number"`
	RiskAllele       string `json:"risk_allele"`
	MAF              string `json:"maf"`
	LifestyleFactor  string `json:"lifestyle_factor"`
	NutrientEffects  string `json:"nutrient_effects"`
	GeneEffects      string `json:"gene_effects"`
	ConditionRelated string `json:"condition_related"`
}

// newReportLine builds a ReportLine from decoded column values keyed by
// label, failing if any required column was absent from the row.
func newReportLine(values map[string]string) (ReportLine, error) {
	for _, label := range reportLabels {
		if _, ok := values[label]; !ok {
			return ReportLine{}, &SchemaError{Column: label, Detail: "required column missing from row"}
		}
	}
	return ReportLine{
		Gene:             values[labelGene],
		ReferenceNumber:  values[labelReference],
		RiskAllele:       values[labelRiskAllele],
		MAF:              values[labelMAF],
		LifestyleFactor:  values[labelLifestyleFactor],
		NutrientEffects:  values[labelNutrientEffects],
		GeneEffects:      values[labelGeneEffects],
		ConditionRelated: values[labelCondition],
	}, nil
}
