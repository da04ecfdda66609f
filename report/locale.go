package report

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale carries the category labels, chart titles and number format used
// when presenting stored predictions.
type Locale struct {
	Tag     language.Tag
	printer *message.Printer

	SexLabels    map[int]string
	SmokerLabels map[int]string
	Titles       Titles
}

// Titles are the chart headings and the empty-store message.
type Titles struct {
	AgeHistogram string
	SexMean      string
	SexCount     string
	SmokerMean   string
	SmokerCount  string
	NoData       string
}

var indonesian = language.Indonesian

// NewLocale resolves a BCP 47 tag such as "en" or "id-ID". Unknown or empty
// tags fall back to English.
func NewLocale(tag string) Locale {
	parsed, err := language.Parse(tag)
	if err != nil {
		parsed = language.English
	}
	base, _ := parsed.Base()
	if idBase, _ := indonesian.Base(); base == idBase {
		return Locale{
			Tag:          indonesian,
			printer:      message.NewPrinter(indonesian),
			SexLabels:    map[int]string{0: "Perempuan", 1: "Laki-laki"},
			SmokerLabels: map[int]string{0: "Non-Perokok", 1: "Perokok"},
			Titles: Titles{
				AgeHistogram: "Distribusi Umur",
				SexMean:      "Rata-rata Premi per Jenis Kelamin",
				SexCount:     "Jumlah Data per Jenis Kelamin",
				SmokerMean:   "Rata-rata Premi per Status Perokok",
				SmokerCount:  "Jumlah Data per Status Perokok",
				NoData:       "Belum ada data prediksi yang disimpan.",
			},
		}
	}
	return Locale{
		Tag:          language.English,
		printer:      message.NewPrinter(language.English),
		SexLabels:    map[int]string{0: "Female", 1: "Male"},
		SmokerLabels: map[int]string{0: "Non-smoker", 1: "Smoker"},
		Titles: Titles{
			AgeHistogram: "Age Distribution",
			SexMean:      "Average Premium by Sex",
			SexCount:     "Records by Sex",
			SmokerMean:   "Average Premium by Smoker Status",
			SmokerCount:  "Records by Smoker Status",
			NoData:       "No predictions have been stored yet.",
		},
	}
}

// FormatPremium renders a premium as rupiah with two decimals and grouped
// thousands, for example "Rp 4,123.99".
func (l Locale) FormatPremium(v float64) string {
	return l.printer.Sprintf("Rp %.2f", v)
}

func (l Locale) sexLabel(code int) string {
	return label(l.SexLabels, code)
}

func (l Locale) smokerLabel(code int) string {
	return label(l.SmokerLabels, code)
}

func label(labels map[int]string, code int) string {
	if s, ok := labels[code]; ok {
		return s
	}
	return strconv.Itoa(code)
}
