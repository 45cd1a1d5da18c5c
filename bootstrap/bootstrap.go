package bootstrap

import (
	"context"
	"crypto/tls"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"

	"github.com/fulldump/slotdb/api"
	"github.com/fulldump/slotdb/configuration"
	"github.com/fulldump/slotdb/database"
	"github.com/fulldump/slotdb/service"
)

var VERSION = "dev"

// Bootstrap wires the database and the http server. start blocks until stop
// is called or the process gets SIGTERM or SIGINT.
func Bootstrap(c *configuration.Configuration) (start, stop func(), err error) {

	db := database.NewDatabase(&database.Config{
		InitialCapacity: c.InitialCapacity,
	})

	b := api.Build(service.NewService(db), c.Statics, VERSION, c.ApiKey, c.ApiSecret, c.EnableCompression)
	b.WithInterceptors(
		api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)),
		api.InterceptorUnavailable(db),
		api.RecoverFromPanic,
		api.PrettyErrorInterceptor,
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	if c.HttpsSelfsigned {
		log.Println("HTTPS Selfsigned")
		certificate, err := selfSignedCertificate()
		if err != nil {
			return nil, nil, err
		}
		s.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{certificate},
		}
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		return nil, nil, err
	}
	log.Println("listening on", ln.Addr().String())

	once := &sync.Once{}
	stop = func() {
		once.Do(func() {
			db.Stop()
			s.Shutdown(context.Background())
		})
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		log.Println("Signal received", sig.String())
		stop()
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				log.Println("ERROR:", err.Error())
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if c.HttpsEnabled {
				err = s.ServeTLS(ln, "", "")
			} else {
				err = s.Serve(ln)
			}
			if err != nil && err != http.ErrServerClosed {
				log.Println("ERROR:", err.Error())
			}
		}()

		wg.Wait()
	}

	return start, stop, nil
}
