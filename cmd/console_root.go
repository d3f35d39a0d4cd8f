package cmd

import (
	"io"
	"log/slog"
	"net/http"

	"medex/internal/adapters/in/console"
	"medex/internal/adapters/out/medexapi"
	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/ports"
	"medex/internal/jobs"
)

// ConsoleRoot wires the driver, vendor and tracker consoles to the MedEx REST API.
type ConsoleRoot struct {
	config Config
	client *medexapi.Client
	logger *slog.Logger
}

func NewConsoleRoot(config Config, logger *slog.Logger) ConsoleRoot {
	httpClient := &http.Client{Timeout: config.OutboundTimeout}
	return ConsoleRoot{
		config: config,
		client: medexapi.NewClient(config.MedexAPIURL, httpClient, medexapi.NewSession(), logger),
		logger: logger,
	}
}

// CreateLocationReportingJob also stops the job whenever the session is cleared,
// including after a failed token refresh.
func (c *ConsoleRoot) CreateLocationReportingJob(source ports.PositionSource) *jobs.LocationReportingJob {
	job := jobs.NewLocationReportingJob(commands.NewReportLocationCommandHandler(c.client), source, c.logger)
	c.client.Session().OnClear(job.Stop)
	return job
}

func (c *ConsoleRoot) CreateDriverConsole(source ports.PositionSource, out io.Writer) *console.DriverConsole {
	reporting := c.CreateLocationReportingJob(source)
	return console.NewDriverConsole(
		c.client,
		queries.NewGetDriverProfileQueryHandler(c.client),
		queries.NewGetVendorQueryHandler(c.client),
		queries.NewGetDriverOrdersQueryHandler(c.client),
		commands.NewChangeOrderStatusCommandHandler(c.client),
		commands.NewToggleDriverPresenceCommandHandler(c.client, reporting),
		reporting,
		out,
		c.logger,
	)
}

func (c *ConsoleRoot) CreateVendorConsole(out io.Writer) *console.VendorConsole {
	return console.NewVendorConsole(
		c.client,
		queries.NewGetVendorDashboardQueryHandler(c.client, c.client, nil),
		commands.NewChangeOrderStatusCommandHandler(c.client),
		commands.NewAssignDriverCommandHandler(c.client, c.client),
		commands.NewCreateOrderCommandHandler(c.client),
		out,
		c.logger,
	)
}

func (c *ConsoleRoot) CreateRegisterAccountCommandHandler() commands.RegisterAccountCommandHandler {
	return commands.NewRegisterAccountCommandHandler(c.client)
}

func (c *ConsoleRoot) CreateTrackingPollJob(token string, printer *console.TrackerPrinter) (*jobs.TrackingPollJob, error) {
	return jobs.NewTrackingPollJob(
		queries.NewGetTrackingSnapshotQueryHandler(c.client),
		token,
		c.config.TrackingInterval,
		printer.Print,
		printer.PrintError,
		c.logger,
	)
}
