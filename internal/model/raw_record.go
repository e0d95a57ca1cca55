package model

// RawRecord mirrors one line of the OPEN_PHMEV CSV export before any
// normalization. Every field is text as found in the file: REM and BSE are
// French-locale decimals ("336.578,01"), identity fields may be empty.
type RawRecord struct {
	ATC1  string
	LATC1 string
	ATC2  string
	LATC2 string
	ATC3  string
	LATC3 string
	ATC4  string
	LATC4 string
	ATC5  string
	LATC5 string

	CIP13  string
	LCIP13 string

	NomEtb           string
	RaisonSocialeEtb string
	CategorieJur     string
	NomVille         string
	Region           string

	Boites string
	Rem    string
	Bse    string
}

// CSVColumns maps RawRecord fields to the header names of the source CSV,
// in canonical order.
var CSVColumns = []string{
	"atc1", "l_atc1",
	"atc2", "l_atc2",
	"atc3", "l_atc3",
	"atc4", "l_atc4",
	"atc5", "l_atc5",
	"cip13", "l_cip13",
	"nom_etb", "raison_sociale_etb",
	"categorie_jur", "nom_ville", "region",
	"BOITES", "REM", "BSE",
}

// ParquetRecord mirrors the Parquet layout produced by the dataset
// preparation step, where BOITES/REM/BSE were already converted to native
// numeric types. Labels stay optional because deeper ATC levels can be
// absent for anonymized lines.
type ParquetRecord struct {
	ATC1  string  `parquet:"atc1"`
	LATC1 *string `parquet:"l_atc1,optional"`
	ATC2  string  `parquet:"atc2"`
	LATC2 *string `parquet:"l_atc2,optional"`
	ATC3  string  `parquet:"atc3"`
	LATC3 *string `parquet:"l_atc3,optional"`
	ATC4  string  `parquet:"atc4"`
	LATC4 *string `parquet:"l_atc4,optional"`
	ATC5  string  `parquet:"atc5"`
	LATC5 *string `parquet:"l_atc5,optional"`

	CIP13  string  `parquet:"cip13"`
	LCIP13 *string `parquet:"l_cip13,optional"`

	NomEtb           *string `parquet:"nom_etb,optional"`
	RaisonSocialeEtb *string `parquet:"raison_sociale_etb,optional"`
	CategorieJur     *string `parquet:"categorie_jur,optional"`
	NomVille         *string `parquet:"nom_ville,optional"`
	Region           *int32  `parquet:"region,optional"`

	Boites int64   `parquet:"BOITES"`
	Rem    float64 `parquet:"REM"`
	Bse    float64 `parquet:"BSE"`
}
