package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_source_file.sql
var RegisterSourceFile string

//go:embed queries/update_file_status.sql
var UpdateFileStatus string

//go:embed queries/transform_stage_to_serving.sql
var TransformStageToServing string

//go:embed queries/delete_serving_for_file.sql
var DeleteServingForFile string

//go:embed queries/delete_staging_batch.sql
var DeleteStagingBatch string

//go:embed queries/analyze_records.sql
var AnalyzeRecords string
