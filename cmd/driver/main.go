package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"medex/cmd"
	"medex/internal/adapters/out/geo"
	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/ports"

	"github.com/labstack/gommon/log"
)

func main() {
	flags := flag.NewFlagSet("medex-driver", flag.ExitOnError)
	email := flags.String("email", os.Getenv("MEDEX_EMAIL"), "driver account email")
	password := flags.String("password", os.Getenv("MEDEX_PASSWORD"), "driver account password")
	positions := flags.String("positions", "", "NDJSON file of {\"latitude\",\"longitude\"} lines")
	startLat := flags.Float64("lat", 0, "simulated start latitude")
	startLon := flags.Float64("lon", 0, "simulated start longitude")
	destLat := flags.Float64("dest-lat", 0, "simulated destination latitude")
	destLon := flags.Float64("dest-lon", 0, "simulated destination longitude")
	register := flags.Bool("register", false, "create the driver account first, then sign in")
	vendorID := flags.Int64("vendor-id", 0, "vendor the new driver works for (with -register)")
	fullName := flags.String("name", "", "driver full name (with -register)")
	phone := flags.String("phone", "", "driver phone (with -register)")
	vehicle := flags.String("vehicle", "bike", "bike, scooter, car or van (with -register)")
	vehicleNumber := flags.String("vehicle-number", "", "vehicle plate (with -register)")
	license := flags.String("license", "", "driving license number (with -register)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}
	if *email == "" || *password == "" {
		log.Fatalf("Both -email and -password are required")
	}

	configs := cmd.LoadConfig()
	logger := cmd.NewLogger(configs)

	source, closeSource := positionSource(configs, logger, *positions, *startLat, *startLon, *destLat, *destLon)
	defer closeSource()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cmd.NewConsoleRoot(configs, logger)

	if *register {
		registerCmd, err := commands.NewRegisterDriverCommand(ports.NewDriver{
			Credentials:   ports.Credentials{Email: *email, Password: *password},
			VendorID:      *vendorID,
			FullName:      *fullName,
			Phone:         *phone,
			VehicleType:   *vehicle,
			VehicleNumber: *vehicleNumber,
			LicenseNumber: *license,
		})
		if err != nil {
			log.Fatalf("Invalid registration: %v", err)
		}
		enrolled, err := root.CreateRegisterAccountCommandHandler().Handle(ctx, registerCmd)
		if err != nil {
			log.Fatalf("Failed to register: %v", err)
		}
		logger.Info("Registered driver", "driver_id", enrolled.ProfileID, "user_id", enrolled.UserID)
	}

	driverConsole := root.CreateDriverConsole(source, os.Stdout)

	if err := driverConsole.SignIn(ctx, *email, *password); err != nil {
		log.Fatalf("Failed to sign in: %v", err)
	}
	if err := driverConsole.Run(ctx, os.Stdin); err != nil {
		log.Fatalf("Driver console stopped: %v", err)
	}
}

func positionSource(configs cmd.Config, logger *slog.Logger, path string, lat, lon, destLat, destLon float64) (ports.PositionSource, func()) {
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open positions file: %v", err)
		}
		return geo.NewNDJSONSource(file, logger), func() { _ = file.Close() }
	}

	start, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		log.Fatalf("Invalid start point: %v", err)
	}
	walker, err := geo.NewWalker(start, configs.LocationStepDeg, configs.LocationStepEvery)
	if err != nil {
		log.Fatalf("Failed to create simulated position source: %v", err)
	}
	if destLat != 0 || destLon != 0 {
		dest, err := kernel.NewGeoPoint(destLat, destLon)
		if err != nil {
			log.Fatalf("Invalid destination: %v", err)
		}
		if err = walker.HeadTo(dest); err != nil {
			log.Fatalf("Invalid destination: %v", err)
		}
	}
	return walker, func() {}
}
