package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/structview"
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

	shape, err := structview.NewShape(
		structview.Field{Name: "kind", Codec: structview.Uint8},
		structview.Field{Name: "seq", Codec: structview.Uint32LE},
		structview.Field{Name: "flags", Codec: structview.Uint16BE},
		structview.Field{Name: "weight", Codec: structview.Float64LE},
		structview.Field{Name: "tag", Codec: structview.CharCodec(8)},
	)
	if err != nil {
		log.Fatal(err)
	}

	view := structview.NewView(shape, structview.Options{Caching: true})
	for i := 0; i < 10000; i++ {
		view.Set("kind", structview.ValueOfUint(7))
		view.Set("seq", structview.ValueOfUint(uint64(i)))
		view.Set("flags", structview.ValueOfUint(0x8001))
		view.Set("weight", structview.ValueOfFloat(153.5))
		view.Set("tag", structview.ValueOfString("record"))
		if err := view.Serialize(); err != nil {
			log.Fatal(err)
		}
		if _, err := view.Get("seq"); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("final window: %x", view.ByteSlice())

	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
