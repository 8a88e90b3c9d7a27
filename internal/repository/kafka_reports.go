package repository

import (
	"context"

	"DemandCast/internal/domain/models"
	domrepo "DemandCast/internal/domain/repository"
	pkgkafka "DemandCast/pkg/kafka"
)

// KafkaReportPublisher pushes finished reports to Kafka topics, keyed by
// product so downstream consumers see per-product ordering.
type KafkaReportPublisher struct {
	producer      *pkgkafka.Producer
	forecastTopic string
	anomalyTopic  string
}

// NewKafkaReportPublisher creates a Kafka report publisher.
func NewKafkaReportPublisher(producer *pkgkafka.Producer, forecastTopic, anomalyTopic string) domrepo.ReportPublisher {
	if forecastTopic == "" {
		forecastTopic = "demandcast.forecasts"
	}
	if anomalyTopic == "" {
		anomalyTopic = "demandcast.anomalies"
	}
	return &KafkaReportPublisher{
		producer:      producer,
		forecastTopic: forecastTopic,
		anomalyTopic:  anomalyTopic,
	}
}

func (p *KafkaReportPublisher) PublishForecast(ctx context.Context, res *models.ForecastResult) error {
	if res == nil {
		return nil
	}
	return p.producer.Publish(ctx, p.forecastTopic, []byte(res.Product.ID), res)
}

func (p *KafkaReportPublisher) PublishAnomalies(ctx context.Context, rep *models.AnomalyReport) error {
	if rep == nil || len(rep.Anomalies) == 0 {
		return nil
	}
	return p.producer.Publish(ctx, p.anomalyTopic, []byte(rep.Product.ID), rep)
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
