package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/om-bhaiya/messle/internal/directory/producers"
	"github.com/om-bhaiya/messle/internal/models"
	"github.com/om-bhaiya/messle/internal/output"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"
)

// OutputDestination receives the events the directory emits: rank
// snapshots, ratings, imports.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// NewOutputDestination picks the sink from config. Kafka wins when
// enabled; otherwise the configured destination, defaulting to console.
func NewOutputDestination(cfg *models.Config, log *zap.Logger) (OutputDestination, error) {
	if cfg.KafkaEnabled || cfg.OutputDestination == models.OutputKafka {
		return producers.NewSaramaProducer(cfg, log)
	}
	switch cfg.OutputDestination {
	case "", models.OutputConsole:
		return &ConsoleOutput{}, nil
	case models.OutputJSON:
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case models.OutputParquet:
		return NewParquetOutput(cfg)
	case models.OutputPostgres:
		return output.NewPostgresOutput(context.Background(), cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown output destination: %s", cfg.OutputDestination)
	}
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	_, err := fmt.Fprintf(os.Stdout, "%s: %s\n", topic, msg)
	return err
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends one JSON line per event to a file per topic.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		dir := filepath.Join(j.basePath, j.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.OpenFile(filepath.Join(dir, topic+".json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open file for topic %s: %w", topic, err)
		}
		j.files[topic] = file
	}

	if _, err := file.Write(msg); err != nil {
		return fmt.Errorf("failed to write message for topic %s: %w", topic, err)
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// ParquetOutput writes one parquet file per topic per run, locally or to
// the configured cloud bucket.
type ParquetOutput struct {
	basePath           string
	folder             string
	runStamp           string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(cfg *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: cfg.OutputPath,
		folder:   cfg.OutputFolder,
		runStamp: time.Now().UTC().Format("20060102T150405Z"),
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if cfg.CloudStorage.Provider != "" {
		switch cfg.CloudStorage.Provider {
		case models.CloudProviderS3:
			factory, err := NewS3WriterFactory(cfg.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = cfg.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
	}

	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	event, err := eventForTopic(topic, msg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[topic]
	if !ok {
		pw, err = p.createNewWriter(topic)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(topic string) (*writer.ParquetWriter, error) {
	objectName := fmt.Sprintf("%s_%s.parquet", topic, p.runStamp)

	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, objectName)
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = newCloudParquetFile(cloudWriter)
	} else {
		dir := filepath.Join(p.basePath, p.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(dir, objectName))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	sc, err := GetSchema(topic)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, nil, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.SchemaHandler = sc

	p.writers[topic] = pw
	p.files[topic] = fw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			return fmt.Errorf("failed to finalize parquet for %s: %w", topic, err)
		}
		if err := p.files[topic].Close(); err != nil {
			return fmt.Errorf("failed to close parquet file for %s: %w", topic, err)
		}
	}
	return nil
}

func eventForTopic(topic string, msg []byte) (interface{}, error) {
	switch topic {
	case models.TopicRankSnapshots:
		var e RankSnapshotEvent
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, err
		}
		return e, nil
	case models.TopicRatings:
		var e RatingEvent
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, err
		}
		return e, nil
	case models.TopicImports:
		var e ImportEvent
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
}

// cloudParquetFile adapts a CloudWriter to the parquet source interface.
// Only sequential writes are supported; the object uploads on Close.
type cloudParquetFile struct {
	cloudWriter CloudWriter
	offset      int64
}

func newCloudParquetFile(cw CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error)   { return c, nil }
func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) { return c, nil }

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
