package model

import "github.com/google/uuid"

// StagingRecord is the normalized, DB-ready representation of one PHMEV
// line, tagged with its load batch so transform/cleanup can address it.
type StagingRecord struct {
	IngestBatchID   uuid.UUID
	SourceFileID    int64
	SourceRowNumber int64

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

	Etablissement string
	Categorie     string
	Ville         string
	Region        int32

	Boites int64
	Rem    float64
	Bse    float64
}

// FromRecord tags a normalized Record with batch identity for staging.
func FromRecord(r *Record, batchID uuid.UUID, fileID, rowNum int64) *StagingRecord {
	return &StagingRecord{
		IngestBatchID:   batchID,
		SourceFileID:    fileID,
		SourceRowNumber: rowNum,

		ATC1:  r.ATC[0].Code,
		LATC1: r.ATC[0].Label,
		ATC2:  r.ATC[1].Code,
		LATC2: r.ATC[1].Label,
		ATC3:  r.ATC[2].Code,
		LATC3: r.ATC[2].Label,
		ATC4:  r.ATC[3].Code,
		LATC4: r.ATC[3].Label,
		ATC5:  r.ATC[4].Code,
		LATC5: r.ATC[4].Label,

		CIP13:  r.ProductCode,
		LCIP13: r.ProductLabel,

		Etablissement: r.Establishment,
		Categorie:     r.Category,
		Ville:         r.City,
		Region:        r.Region,

		Boites: r.Boxes,
		Rem:    r.Reimbursed,
		Bse:    r.Base,
	}
}

// StagingColumns returns the ordered column names for COPY into
// ingest.stage_records.
func StagingColumns() []string {
	return []string{
		"ingest_batch_id",
		"source_file_id",
		"source_row_number",
		"atc1", "l_atc1",
		"atc2", "l_atc2",
		"atc3", "l_atc3",
		"atc4", "l_atc4",
		"atc5", "l_atc5",
		"cip13", "l_cip13",
		"etablissement",
		"categorie",
		"ville",
		"region",
		"boites",
		"rem",
		"bse",
	}
}

// CopyValues returns the row values in the same order as StagingColumns(),
// suitable for pgx CopyFromSource.
func (r *StagingRecord) CopyValues() []any {
	return []any{
		r.IngestBatchID,
		r.SourceFileID,
		r.SourceRowNumber,
		r.ATC1, r.LATC1,
		r.ATC2, r.LATC2,
		r.ATC3, r.LATC3,
		r.ATC4, r.LATC4,
		r.ATC5, r.LATC5,
		r.CIP13, r.LCIP13,
		r.Etablissement,
		r.Categorie,
		r.Ville,
		r.Region,
		r.Boites,
		r.Rem,
		r.Bse,
	}
}
