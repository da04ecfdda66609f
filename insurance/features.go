package insurance

// FeatureNames is the column order the model was trained on.
func FeatureNames() []string {
	return []string{"age", "sex", "bmi", "children", "smoker"}
}

// EncodedFeatures is the numeric row fed to the model.
type EncodedFeatures struct {
	Age      int     `json:"age"`
	Sex      int     `json:"sex"`
	BMI      float64 `json:"bmi"`
	Children int     `json:"children"`
	Smoker   int     `json:"smoker"`
}

// Vector returns the features in FeatureNames order.
func (f EncodedFeatures) Vector() []float64 {
	return []float64{
		float64(f.Age),
		float64(f.Sex),
		f.BMI,
		float64(f.Children),
		float64(f.Smoker),
	}
}

// PredictionRecord is one stored prediction. Records are never updated.
type PredictionRecord struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Age              int     `json:"age"`
	Sex              int     `json:"sex"`
	BMI              float64 `json:"bmi"`
	Children         int     `json:"children"`
	Smoker           int     `json:"smoker"`
	PredictedCharges float64 `json:"predicted_charges"`
}

// NewPredictionRecord builds an unsaved record from the encoded row and the model output.
func NewPredictionRecord(name string, features EncodedFeatures, charges float64) PredictionRecord {
	return PredictionRecord{
		Name:             name,
		Age:              features.Age,
		Sex:              features.Sex,
		BMI:              features.BMI,
		Children:         features.Children,
		Smoker:           features.Smoker,
		PredictedCharges: charges,
	}
}

// Features returns the encoded row the record was predicted from.
func (r PredictionRecord) Features() EncodedFeatures {
	return EncodedFeatures{
		Age:      r.Age,
		Sex:      r.Sex,
		BMI:      r.BMI,
		Children: r.Children,
		Smoker:   r.Smoker,
	}
}
