package service

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/aaravmahajanofficial/catalog-cart-service/internal/services")
