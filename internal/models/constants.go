package models

const (
	TopicRankSnapshots = "listing_rank_events"
	TopicRatings       = "listing_rating_events"
	TopicImports       = "listing_import_events"

	OutputConsole  = "console"
	OutputJSON     = "json"
	OutputKafka    = "kafka"
	OutputParquet  = "parquet"
	OutputPostgres = "postgres"

	CloudProviderS3 = "s3"
)
