package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/smartstr"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1
	short := "node-id"
	long := "a value long enough that the inline buffer can never hold it"
	for i := 0; i < 10000; i++ {
		s := smartstr.FromString(short)
		s.PushString("/shard-7")
		if s.IsHeap() {
			log.Fatal("short content ended up on the heap")
		}
		h := smartstr.FromString(long)
		h.Truncate(7)
		h.TryIntoStack()
		_ = h.String()
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
