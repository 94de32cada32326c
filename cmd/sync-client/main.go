package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	synchub "recipehub/internal/sync"
	"recipehub/pkg/logger"
	"recipehub/pkg/utils"
)

func main() {
	utils.LoadDotEnv()
	defer logger.Sync()
	log := logger.L().Named("sync-client")

	defaultAddr := utils.LoadServerConfig().SyncTCPAddr
	if defaultAddr == "" {
		defaultAddr = "127.0.0.1:7070"
	}
	addr := flag.String("addr", defaultAddr, "TCP change feed address")
	flag.Parse()

	for {
		if err := run(*addr, os.Stdout, log); err != nil {
			log.Warn("disconnected", zap.Error(err))
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, out io.Writer, log *zap.Logger) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Info("connected", zap.String("addr", addr))
	if err := follow(conn, out); err != nil {
		return err
	}
	return os.ErrClosed
}

// follow prints one line per change event read from r until r is exhausted.
func follow(r io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fmt.Fprintln(out, describe(sc.Bytes()))
	}
	return sc.Err()
}

func describe(line []byte) string {
	var ev synchub.ChangeEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.Type == "" {
		// not an event? print raw
		return string(line)
	}

	at := ev.At.Local().Format(time.TimeOnly)
	switch ev.Type {
	case synchub.RecipeCreated:
		return fmt.Sprintf("%s recipe #%d added: %s", at, ev.RecipeID, ev.Name)
	case synchub.RecipeDeleted:
		return fmt.Sprintf("%s recipe #%d deleted", at, ev.RecipeID)
	case synchub.StoresInitialized:
		return fmt.Sprintf("%s stores reset (%d stores)", at, ev.Count)
	default:
		return string(line)
	}
}
