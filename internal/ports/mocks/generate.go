//go:generate mockgen -source=../printer_config_store.go  -destination=./mock_printer_config_store.go  -package=mocks
//go:generate mockgen -source=../config_source.go         -destination=./mock_config_source.go         -package=mocks
//go:generate mockgen -source=../network_delivery.go      -destination=./mock_network_delivery.go      -package=mocks
//go:generate mockgen -source=../render_surface.go        -destination=./mock_render_surface.go        -package=mocks
//go:generate mockgen -source=../print_event_publisher.go -destination=./mock_print_event_publisher.go -package=mocks
//go:generate mockgen -source=../validator.go             -destination=./mock_validator.go             -package=mocks
//go:generate mockgen -source=../logger.go                -destination=./mock_logger.go                -package=mocks
//go:generate mockgen -source=../message_consumer.go      -destination=./mock_message_consumer.go      -package=mocks
//go:generate mockgen -source=../print_service.go         -destination=./mock_print_service.go         -package=mocks

package mocks
