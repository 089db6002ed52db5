package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/controller"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/service"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/pkg/http_server"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

// Each migration set tracks its version in its own table. Both sets start at
// 000001, so a shared schema_migrations would report the second set as already
// applied and its tables would never be created.
const (
	accountMigrationsTable = "account_schema_migrations"
	auctionMigrationsTable = "auction_schema_migrations"
)

func accountTablesExist(pg *postgres.Postgres) (bool, error) {
	if err := pg.Database.Ping(); err != nil {
		return false, err
	}

	var id uuid.UUID
	err := pg.Database.QueryRow("select id from account limit 1").Scan(&id)

	return err == nil, nil
}

func auctionTablesExist(pg *postgres.Postgres) (bool, error) {
	if err := pg.Database.Ping(); err != nil {
		return false, err
	}

	var id uuid.UUID
	err := pg.Database.QueryRow("select id from lote limit 1").Scan(&id)

	return err == nil, nil
}

func migrateTables(postgresDB *postgres.Postgres, sourceUrl string, databaseName string, migrationsTable string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{
		DatabaseName:    databaseName,
		MigrationsTable: migrationsTable,
	})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if err.Error() == "no change" {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	accountsExist, err := accountTablesExist(postgresDB)
	if err != nil {
		log.Fatal(err)
	}

	if !accountsExist {
		migrateTables(postgresDB, "file://migrations/account-migrations", databaseName, accountMigrationsTable)
	}

	auctionExists, err := auctionTablesExist(postgresDB)
	if err != nil {
		log.Fatal(err)
	}
	if !auctionExists {
		migrateTables(postgresDB, "file://migrations/auction-migrations", databaseName, auctionMigrationsTable)
	}
}

func Run() {
	serverAddressEnv := os.Getenv("SERVER_ADDRESS")
	dbConnEnv := os.Getenv("POSTGRES_CONN")
	databaseEnv := os.Getenv("POSTGRES_DATABASE")

	log.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(dbConnEnv)
	if err != nil {
		log.Fatal("Error occurred while connecting to db: ", err)
	}
	defer postgresDB.Close()

	log.Println("Running migrations...")
	runMigrations(postgresDB, databaseEnv)

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories)
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, serverAddressEnv)

	log.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		log.Fatal("Notify error: ", err)
	}

	log.Println("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Fatal("Shutdown error: ", err)
	} else {
		log.Println("Successful shutdown")
	}
}
